package settings

import "github.com/gogpu/invcolors"

// Option configures a store.
type Option func(*options)

type options struct {
	channel *invcolors.Channel
}

func defaultOptions() options {
	return options{channel: invcolors.NewChannel(nil)}
}

// WithChannel sets the diagnostic channel used to report read and write
// failures. A nil channel keeps the default, which follows the package
// logger.
func WithChannel(ch *invcolors.Channel) Option {
	return func(o *options) {
		if ch != nil {
			o.channel = ch
		}
	}
}
