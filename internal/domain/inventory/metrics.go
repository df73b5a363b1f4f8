package inventory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var movementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "awr_inventory_movements_total",
	Help: "Movements appended to the audit log.",
}, []string{"kind"})
