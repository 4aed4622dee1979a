package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/triage"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

const testRulebookYAML = `
rules:
  - name: chest_pain
    patterns:
      - chest pain
      - chest tightness
  - name: unconscious
    patterns:
      - unconscious
      - not responding
`

const testTemplatesYAML = `
forbidden_terms:
  - you have
  - diagnosed with
templates:
  emergency:
    en: "Seek emergency care now. This is guidance, not a diagnosis."
  phc:
    en: "Please visit your nearest primary health centre. This is guidance, not a diagnosis."
  self_care:
    en: "Rest and fluids may help. This is guidance, not a diagnosis."
fallback:
  en: "Please consult a qualified health worker. This is guidance, not a diagnosis."
`

func testEngine(t *testing.T) *triage.Engine {
	t.Helper()
	rb, err := triage.ParseRulebook([]byte(testRulebookYAML))
	require.NoError(t, err)
	ts, err := triage.ParseTemplates([]byte(testTemplatesYAML))
	require.NoError(t, err)
	engine, err := triage.NewEngine(rb, ts, nil)
	require.NoError(t, err)
	return engine
}

type mockSessionRepository struct {
	CreateFunc   func(ctx context.Context, session *triage.Session) error
	GetBySIDFunc func(ctx context.Context, sid string) (*triage.Session, error)
	Created      []*triage.Session
}

func (m *mockSessionRepository) Create(ctx context.Context, session *triage.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	if err := session.SetID(1); err != nil {
		return err
	}
	m.Created = append(m.Created, session)
	return nil
}

func (m *mockSessionRepository) GetBySID(ctx context.Context, sid string) (*triage.Session, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, apperrors.NewNotFoundError("triage session not found")
}

func (m *mockSessionRepository) List(ctx context.Context, filter triage.ListFilter) ([]*triage.Session, int64, error) {
	return nil, 0, nil
}

func (m *mockSessionRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	return 0, nil
}

func (m *mockSessionRepository) DeleteByUser(ctx context.Context, ownerID uint) error {
	return nil
}

type mockTxManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockAuditor struct {
	AppendFunc func(ctx context.Context, rec audit.Record) (*audit.Entry, error)
	Records    []audit.Record
}

func (m *mockAuditor) Append(ctx context.Context, rec audit.Record) (*audit.Entry, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, rec)
	}
	m.Records = append(m.Records, rec)
	return nil, nil
}
