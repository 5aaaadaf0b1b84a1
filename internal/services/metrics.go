// Package services – exchange metrics.
//
// One counter, labelled by outcome, covering every terminal state of an
// exchange attempt. Label values are a small fixed set to keep cardinality
// bounded.
package services

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeDelivered         = "delivered"
	outcomeDeliveryFailed    = "delivery_failed"
	outcomeSenderOptedOut    = "sender_opted_out"
	outcomeRecipientOptedOut = "recipient_opted_out"
	outcomeAgreementRequired = "agreement_required"
	outcomeNoRecipient       = "no_recipient"
	outcomeSelfKudos         = "self_kudos"
	outcomeReasonFlagged     = "reason_flagged"
	outcomeStoreError        = "store_error"
)

// kudosExchanges counts exchange attempts by terminal outcome.
var kudosExchanges = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kudos_exchanges_total",
		Help: "Total number of kudos exchange attempts by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(kudosExchanges)
}

// countExchange increments the outcome counter for one attempt.
func countExchange(outcome string) {
	kudosExchanges.WithLabelValues(outcome).Inc()
}
