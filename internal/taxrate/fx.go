package taxrate

import "go.uber.org/fx"

var Module = fx.Module("taxrate",
	fx.Provide(ProvideRepository),
)
