package bootstrap

import (
	"context"
	"log/slog"

	"evcharge-booking/internal/pkg/config"
	"evcharge-booking/internal/pkg/mq"

	"go.uber.org/fx"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		NewPublisher,
	),
)

// NewPublisher falls back to a no-op publisher when no broker is
// configured, so booking events never block the request path.
func NewPublisher(lc fx.Lifecycle, cfg config.Config) (mq.Publisher, error) {
	if cfg.MQ.URL == "" {
		slog.Info("MQが未設定のためイベント発行を無効化します")
		return mq.NopPublisher{}, nil
	}

	pub, err := mq.NewAMQPPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}
