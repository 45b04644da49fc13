package service

import "go-3pl-warehouse/internal/ws"

// Notifier fans stock and shipment events out to live dashboards
type Notifier interface {
	Publish(event ws.Event)
}

type noopNotifier struct{}

func (noopNotifier) Publish(ws.Event) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
