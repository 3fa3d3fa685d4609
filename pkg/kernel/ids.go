package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

type SearchID string

func NewSearchID(id string) SearchID { return SearchID(id) }
func (s SearchID) String() string    { return string(s) }
func (s SearchID) IsEmpty() bool     { return string(s) == "" }

type CvID string

func NewCvID(id string) CvID  { return CvID(id) }
func (c CvID) String() string { return string(c) }
func (c CvID) IsEmpty() bool  { return string(c) == "" }
