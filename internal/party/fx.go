package party

import "go.uber.org/fx"

var Module = fx.Module("party",
	fx.Provide(ProvideRepository),
)
