package middleware

import tele "gopkg.in/telebot.v4"

// OperatorOptions defines how the single-operator check behaves.
type OperatorOptions struct {
	OperatorID int64
	OnReject   tele.HandlerFunc
}

// OperatorOnlyMiddleware ensures that only the configured operator can drive
// the intake flow. A zero OperatorID disables the check.
func OperatorOnlyMiddleware(opts OperatorOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.OperatorID != 0 && c.Sender().ID != opts.OperatorID {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
