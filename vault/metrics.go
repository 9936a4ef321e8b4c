// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import "github.com/luxfi/metric"

const (
	opLabel    = "op"
	assetLabel = "asset"
)

var transferLabels = []string{opLabel, assetLabel}

type metrics struct {
	transfers metric.CounterVec
	refunds   metric.Counter
}

func newMetrics(registerer metric.Registerer) (*metrics, error) {
	m := &metrics{
		transfers: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "vault_transfers",
				Help: "number of vault transfer operations by op and asset",
			},
			transferLabels,
		),
		refunds: metric.NewCounter(metric.CounterOpts{
			Name: "vault_refunds",
			Help: "number of failed withdrawals refunded",
		}),
	}
	return m, nil
}

func (m *metrics) observe(op string, asset AssetKind) {
	m.transfers.With(metric.Labels{
		opLabel:    op,
		assetLabel: asset.String(),
	}).Inc()
}
