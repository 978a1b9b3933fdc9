// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package notify

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/jmsr/castcore/internal/logging"
)

// Topic is the single in-process topic notices are published to.
const Topic = "notices"

// Bus is an in-process Watermill pub/sub carrying Notice messages from the
// orchestrator to any number of local subscribers (a log sink, a tray icon,
// a future local UI).
type Bus struct {
	pubsub *gochannel.GoChannel
}

// New builds a Bus. Messages persist only as long as there is a live
// subscriber reading them; there is no backing store.
func New() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
	}
}

// Notify implements orchestrator.Notifier: it publishes a best-effort
// notice and never blocks the caller on a slow or absent subscriber.
func (b *Bus) Notify(level, msg string) {
	m := message.NewMessage(uuid.NewString(), []byte(msg))
	m.Metadata.Set("level", level)

	if err := b.pubsub.Publish(Topic, m); err != nil {
		logging.Warn().Err(err).Str("level", level).Msg("notify: publish failed")
	}
}

// Subscribe returns a channel of notice messages. Callers must Ack (or
// Nack) every message they receive, per Watermill convention.
func (b *Bus) Subscribe() (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(context.Background(), Topic)
}

// Close shuts down the bus, closing every subscriber channel.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
