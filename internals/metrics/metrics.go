package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fdp_registrations_total", Help: "Registrations accepted, by entity type"},
		[]string{"entity_type"},
	)
	Payments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fdp_payments_total", Help: "Payment state transitions, by resulting status"},
		[]string{"status"},
	)
	Webhooks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fdp_webhooks_total", Help: "Gateway webhook deliveries, by outcome"},
		[]string{"result"},
	)
	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fdp_notifications_total", Help: "Outbound notifications, by channel and status"},
		[]string{"channel", "status"},
	)
	Certificates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fdp_certificates_total", Help: "Certificate issuance attempts, by result"},
		[]string{"result"},
	)
)

func Register() {
	prometheus.MustRegister(Registrations, Payments, Webhooks, Notifications, Certificates)
}
