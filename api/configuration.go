package api

type Configuration struct {
	Env     string
	AppName string
	Version string
	Port    string

	ProfilingMode string
	GcpProjectId  string
}
