package dashboard

// DepartmentBucket is one slice of the department histogram.
type DepartmentBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// RecentEmployee is a roster row with display defaults applied.
type RecentEmployee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

// Summary holds the aggregates shown on the overview screen.
type Summary struct {
	TotalEmployees    int                `json:"totalEmployees"`
	NewHiresThisMonth int                `json:"newHiresThisMonth"`
	Departments       []DepartmentBucket `json:"departments"`
	RecentEmployees   []RecentEmployee   `json:"recentEmployees"`
}

// Destination is a navigation target of the dashboard shell.
type Destination string

const (
	DestinationOverview   Destination = "overview"
	DestinationEmployees  Destination = "employees"
	DestinationAttendance Destination = "attendance"
	DestinationPayroll    Destination = "payroll"
)

func Destinations() []Destination {
	return []Destination{DestinationOverview, DestinationEmployees, DestinationAttendance, DestinationPayroll}
}
