package alerting

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/catalog"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func TestEvaluateSKURisk(t *testing.T) {
	skus := []domain.SKU{
		{ID: "A", TotalRisk: 80},
		{ID: "B", TotalRisk: 80.5},
		{ID: "C", TotalRisk: 95},
	}
	rules := []domain.AlertRule{{ID: "1", Condition: domain.ConditionSKURisk, Threshold: 80, Email: "a@b.co", IsActive: true}}

	got := Evaluate(rules, skus, nil, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Subject)
	assert.Equal(t, "C", got[1].Subject)
	assert.Equal(t, "1", got[1].RuleID)
	assert.Equal(t, "SKU Risk Score: C is 95 (SKU Risk Score > 80)", got[1].Message)
}

func TestEvaluateSkipsInactiveRules(t *testing.T) {
	skus := []domain.SKU{{ID: "A", TotalRisk: 99}}
	rules := []domain.AlertRule{{ID: "1", Condition: domain.ConditionSKURisk, Threshold: 10}}

	assert.Empty(t, Evaluate(rules, skus, nil, nil))
}

func TestEvaluateEveryCondition(t *testing.T) {
	skus := []domain.SKU{{ID: "S1", GeoRisk: 70, TariffImpact: 30}}
	cats := []domain.Category{{Name: "Toys", RiskScore: 60}}
	sups := []domain.Supplier{{ID: "SUP1", TariffRate: 12.5}}
	rules := []domain.AlertRule{
		{ID: "g", Condition: domain.ConditionGeoRisk, Threshold: 50, IsActive: true},
		{ID: "t", Condition: domain.ConditionTariffIncrease, Threshold: 25, IsActive: true},
		{ID: "c", Condition: domain.ConditionCategoryChange, Threshold: 55, IsActive: true},
		{ID: "s", Condition: domain.ConditionSupplierChange, Threshold: 10, IsActive: true},
	}

	got := Evaluate(rules, skus, cats, sups)
	require.Len(t, got, 4)
	assert.Equal(t, "S1", got[0].Subject)
	assert.Equal(t, float64(30), got[1].Value)
	assert.Equal(t, "Tariff Rate Increase: S1 is 30% (Tariff Rate Increase > 25%)", got[1].Message)
	assert.Equal(t, "Toys", got[2].Subject)
	assert.Equal(t, "SUP1", got[3].Subject)
}

func TestEvaluateDefaultRulesOnMockCatalog(t *testing.T) {
	c := catalog.New(catalog.MockData())
	rules := []domain.AlertRule{{ID: "1", Condition: domain.ConditionSKURisk, Threshold: 100, IsActive: true}}

	assert.Empty(t, Evaluate(rules, c.SKUs(), c.Categories(), c.Suppliers()), "nothing exceeds 100")
}

func TestKafkaNotifierPublishesKeyedJSON(t *testing.T) {
	w := &mockWriter{}
	n := NewKafkaNotifier(w)

	triggers := []domain.AlertTrigger{{RuleID: "r1", Subject: "WM001", Value: 91}}
	require.NoError(t, n.Notify(context.Background(), triggers))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("r1"), w.msgs[0].Key)

	var decoded domain.AlertTrigger
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, triggers[0], decoded)

	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

func TestKafkaNotifierEmptyAndErrors(t *testing.T) {
	w := &mockWriter{err: errors.New("broker down")}
	n := NewKafkaNotifier(w)

	assert.NoError(t, n.Notify(context.Background(), nil))

	err := n.Notify(context.Background(), []domain.AlertTrigger{{RuleID: "r1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNewNotifier(t *testing.T) {
	assert.IsType(t, LogNotifier{}, NewNotifier("", nil, ""))
	assert.IsType(t, LogNotifier{}, NewNotifier("smtp", nil, ""))
	assert.IsType(t, &KafkaNotifier{}, NewNotifier(NotifierKafka, []string{"localhost:9092"}, "alerts"))
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), []domain.AlertTrigger{{RuleID: "x"}}))
}
