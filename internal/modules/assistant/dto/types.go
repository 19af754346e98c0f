package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type AskInput struct {
	Plugin      string
	Question    string
	LessonID    string
	LessonTitle string
}

type AskOutput struct {
	Plugin string
	Answer string
	Terms  []string
}
