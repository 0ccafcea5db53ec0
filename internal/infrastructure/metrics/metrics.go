package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	TransactionsRecorded *prometheus.CounterVec
	OperationAmount      *prometheus.HistogramVec
	LedgerInconsistency  prometheus.Counter
	WalletConflicts      prometheus.Counter

	// Wallet metrics
	WalletsCreated prometheus.Counter
	WalletToggles  prometheus.Counter

	// User metrics
	UsersRegistered      prometheus.Counter
	SubscriptionUpgrades *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_transactions_recorded_total",
				Help: "Transaction records appended to the ledger by type and status",
			},
			[]string{"type", "status"},
		),
		OperationAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_operation_amount",
				Help:    "Amounts of ledger operations",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000, 100000},
			},
			[]string{"type"},
		),
		LedgerInconsistency: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_ledger_inconsistency_total",
			Help: "Transfers debited but not credited, requiring operator intervention",
		}),
		WalletConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallet_conflicts_total",
			Help: "Optimistic lock conflicts on wallet balance updates",
		}),

		WalletsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallets_created_total",
			Help: "Total number of wallets created",
		}),
		WalletToggles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallet_toggles_total",
			Help: "Total number of wallet status toggles",
		}),

		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_users_registered_total",
			Help: "Total number of users registered",
		}),
		SubscriptionUpgrades: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_subscription_upgrades_total",
				Help: "Subscription upgrades by tier and outcome",
			},
			[]string{"tier", "status"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletd_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
