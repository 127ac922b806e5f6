package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/abilitree/internal/runtime"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/dsl"
	"github.com/aretw0/abilitree/pkg/ledger"
	"github.com/aretw0/abilitree/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainTree(t *testing.T, budget int, hooks domain.LifecycleHooks) *runtime.Tree {
	t.Helper()
	b := dsl.New("test")
	c := b.Class("warrior")
	c.Ability("Bash").At(1, 4).Cost(1)
	c.Ability("Charge").At(3, 4).Cost(1)
	c.Ability("Uppercut").At(5, 4).Cost(1)
	c.Link("Bash", "Charge", "S").Link("Charge", "Uppercut", "S")
	class, err := c.Build()
	require.NoError(t, err)

	tree, violations, err := runtime.NewTree(class.Name, class.Abilities, ledger.New(budget), runtime.WithLifecycleHooks(hooks))
	require.NoError(t, err)
	require.Empty(t, violations)
	return tree
}

func TestCollector_RecordsRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewCollector(reg)
	require.NoError(t, err)
	assert.Equal(t, prometheus.Gatherer(reg), collector.Gatherer())

	tree := chainTree(t, 2, collector.Hooks())
	for _, name := range []string{"Bash", "Charge"} {
		_, err := tree.Click(t.Context(), name)
		require.NoError(t, err)
	}
	_, err = tree.Click(t.Context(), "Uppercut")
	require.ErrorIs(t, err, domain.ErrActionRejected)
	_, err = tree.Click(t.Context(), "Bash")
	require.NoError(t, err)
	_, err = tree.Reset(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.ClicksTotal.WithLabelValues("warrior", domain.TaskNameEnable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ClicksTotal.WithLabelValues("warrior", domain.TaskNameStandby)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.RejectionsTotal.WithLabelValues("warrior", string(domain.RejectBudget))))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.TransitionsTotal.WithLabelValues("warrior", domain.StateNameEnabled)))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.TransitionsTotal.WithLabelValues("warrior", domain.StateNameDisabled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ResetsTotal.WithLabelValues("warrior")))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.RouteHops))
}

func TestNewCollector_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := observability.NewCollector(reg)
	require.NoError(t, err)
	second, err := observability.NewCollector(reg)
	require.NoError(t, err)
	assert.Same(t, first.ClicksTotal, second.ClicksTotal)
}

func TestNilCollector(t *testing.T) {
	var c *observability.Collector
	assert.Nil(t, c.Gatherer())
	assert.Nil(t, c.Hooks().OnTransition)
}

func TestAuditHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	tree := chainTree(t, 1, observability.AuditHooks(logger))
	_, err := tree.Click(t.Context(), "Bash")
	require.NoError(t, err)
	_, err = tree.Click(t.Context(), "Charge")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=transition")
	assert.Contains(t, out, "ability=Charge from=disable to=standby")
	assert.Contains(t, out, "msg=route_end")
	assert.Contains(t, out, "msg=rejected class=warrior ability=Charge reason=budget")
}
