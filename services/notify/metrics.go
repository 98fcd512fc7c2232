package notifysvc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSent    = "sent"
	statusFailed  = "failed"
	statusSkipped = "skipped"
)

var notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "uni_diary_notifications_total",
	Help: "Chat notifications by channel and delivery outcome.",
}, []string{"channel", "status"})

func record(channel, status string) {
	notificationsTotal.WithLabelValues(channel, status).Inc()
}
