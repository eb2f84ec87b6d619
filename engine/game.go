package engine

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnOnLoad          OnLoad
	FnOnLoadError     OnLoadError
	FnShutdown        Shutdown
}

type Initialize func() error

// OnLoad receives every world that loaded successfully, the first one and
// each one reloaded in watch mode.
type OnLoad func(world *World) error

// OnLoadError receives the error of a failed reload. The previous world stays
// current.
type OnLoadError func(err error)

type Shutdown func() error
