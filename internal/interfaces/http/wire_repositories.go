package http

import (
	"gorm.io/gorm"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	"github.com/sahay-inc/sahay/internal/domain/neuroscreen"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/domain/syncevent"
	"github.com/sahay-inc/sahay/internal/domain/telemed"
	"github.com/sahay-inc/sahay/internal/domain/therapy"
	"github.com/sahay-inc/sahay/internal/domain/triage"
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/domain/vaccination"
	"github.com/sahay-inc/sahay/internal/domain/wellness"
	"github.com/sahay-inc/sahay/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	userRepo         user.Repository
	tokenRepo        user.TokenRepository
	profileRepo      user.ProfileRepository
	consentRepo      consent.Repository
	auditRepo        audit.Repository
	syncEventRepo    syncevent.Repository
	wellnessRepo     wellness.Repository
	triageRepo       triage.Repository
	neuroscreenRepo  neuroscreen.Repository
	vaccinationRepo  vaccination.Repository
	therapyModRepo   therapy.ModuleRepository
	therapyPackRepo  therapy.PackRepository
	teleRequestRepo  telemed.Repository
	prescriptionRepo telemed.PrescriptionRepository
	complaintRepo    complaint.Repository
	slaRuleRepo      complaint.SLARuleRepository
	historyRepo      complaint.StatusHistoryRepository
	evidenceRepo     complaint.EvidenceRepository
	anchorRepo       anchor.Repository
	eventRepo        analytics.EventRepository
	aggregateRepo    analytics.AggregateRepository
	dashboardRepo    dashboard.Repository
	outboxRepo       outbox.Repository
}

// newRepositories creates all repository instances from the database
// connection. The k threshold feeds the dashboard repository so the
// materialized-view floors track the configured value.
func newRepositories(db *gorm.DB, kThreshold int64) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db),
		tokenRepo:        repository.NewAccessTokenRepository(db),
		profileRepo:      repository.NewProfileRepository(db),
		consentRepo:      repository.NewConsentRepository(db),
		auditRepo:        repository.NewAuditRepository(db),
		syncEventRepo:    repository.NewSyncEventRepository(db),
		wellnessRepo:     repository.NewWellnessRepository(db),
		triageRepo:       repository.NewTriageRepository(db),
		neuroscreenRepo:  repository.NewNeuroscreenRepository(db),
		vaccinationRepo:  repository.NewVaccinationRepository(db),
		therapyModRepo:   repository.NewTherapyModuleRepository(db),
		therapyPackRepo:  repository.NewTherapyPackRepository(db),
		teleRequestRepo:  repository.NewTeleRequestRepository(db),
		prescriptionRepo: repository.NewPrescriptionRepository(db),
		complaintRepo:    repository.NewComplaintRepository(db),
		slaRuleRepo:      repository.NewSLARuleRepository(db),
		historyRepo:      repository.NewComplaintStatusHistoryRepository(db),
		evidenceRepo:     repository.NewEvidenceRepository(db),
		anchorRepo:       repository.NewAnchorRepository(db),
		eventRepo:        repository.NewAnalyticsEventRepository(db),
		aggregateRepo:    repository.NewAggregateRepository(db),
		dashboardRepo:    repository.NewDashboardRepository(db, kThreshold),
		outboxRepo:       repository.NewOutboxRepository(db),
	}
}
