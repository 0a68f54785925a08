package dto

type DeliverInput struct {
	Kind  string
	Title string
	Body  string
	Sound bool
}

type DeliverOutput struct {
	Delivered []string
}

type NotifierInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Kinds   []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type TestInput struct {
	// Name targets one plugin; empty sends through every sink.
	Name string
}
