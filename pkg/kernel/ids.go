package kernel

// Typed identifiers shared across modules. Keeping them as distinct string
// types prevents a lead ID and an engagement ID from being swapped silently.

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type LeadID string

func NewLeadID(id string) LeadID { return LeadID(id) }
func (l LeadID) String() string  { return string(l) }
func (l LeadID) IsEmpty() bool   { return string(l) == "" }

type EngagementID string

func NewEngagementID(id string) EngagementID { return EngagementID(id) }
func (e EngagementID) String() string        { return string(e) }
func (e EngagementID) IsEmpty() bool         { return string(e) == "" }

type ReminderID string

func NewReminderID(id string) ReminderID { return ReminderID(id) }
func (r ReminderID) String() string      { return string(r) }
func (r ReminderID) IsEmpty() bool       { return string(r) == "" }
