package dto

type Segment struct {
	Kind string
	Text string
}

type LessonOutput struct {
	ID        string
	Title     string
	Chapter   string
	Order     int
	Format    string
	Completed bool
}

type LessonDetailOutput struct {
	ID           string
	Title        string
	Chapter      string
	Order        int
	Format       string
	Path         string
	Completed    bool
	Body         []Segment
	Continuation []Segment
}

type ReindexOutput struct {
	Indexed int
	Removed int
}

type SeedOutput struct {
	Written []string
	Skipped []string
}
