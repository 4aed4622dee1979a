package http

import (
	adminUsecases "github.com/sahay-inc/sahay/internal/application/admin/usecases"
	analyticsServices "github.com/sahay-inc/sahay/internal/application/analytics/services"
	analyticsUsecases "github.com/sahay-inc/sahay/internal/application/analytics/usecases"
	anchorUsecases "github.com/sahay-inc/sahay/internal/application/anchor/usecases"
	auditUsecases "github.com/sahay-inc/sahay/internal/application/audit/usecases"
	authUsecases "github.com/sahay-inc/sahay/internal/application/auth/usecases"
	complaintUsecases "github.com/sahay-inc/sahay/internal/application/complaint/usecases"
	consentUsecases "github.com/sahay-inc/sahay/internal/application/consent/usecases"
	dashboardUsecases "github.com/sahay-inc/sahay/internal/application/dashboard/usecases"
	neuroscreenUsecases "github.com/sahay-inc/sahay/internal/application/neuroscreen/usecases"
	outboxUsecases "github.com/sahay-inc/sahay/internal/application/outbox/usecases"
	profileUsecases "github.com/sahay-inc/sahay/internal/application/profile/usecases"
	syncUsecases "github.com/sahay-inc/sahay/internal/application/sync/usecases"
	telemedUsecases "github.com/sahay-inc/sahay/internal/application/telemed/usecases"
	therapyUsecases "github.com/sahay-inc/sahay/internal/application/therapy/usecases"
	triageUsecases "github.com/sahay-inc/sahay/internal/application/triage/usecases"
	userUsecases "github.com/sahay-inc/sahay/internal/application/user/usecases"
	vaccinationUsecases "github.com/sahay-inc/sahay/internal/application/vaccination/usecases"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Auth
	registerUC *authUsecases.RegisterUseCase
	loginUC    *authUsecases.LoginUseCase
	logoutUC   *authUsecases.LogoutUseCase

	// Profile & erasure
	getProfileUC    *profileUsecases.GetProfileUseCase
	updateProfileUC *profileUsecases.UpdateProfileUseCase
	exportProfileUC *profileUsecases.ExportProfileUseCase
	eraseUserUC     *userUsecases.EraseUserUseCase

	// Consent
	grantConsentUC *consentUsecases.GrantConsentUseCase
	listConsentsUC *consentUsecases.ListConsentsUseCase

	// Sync gateway
	submitBatchUC *syncUsecases.SubmitBatchUseCase

	// Triage
	createSessionUC *triageUsecases.CreateSessionUseCase
	getSessionUC    *triageUsecases.GetSessionUseCase

	// Child health
	submitScreeningUC   *neuroscreenUsecases.SubmitScreeningUseCase
	getScreeningUC      *neuroscreenUsecases.GetResultUseCase
	recordVaccinationUC *vaccinationUsecases.RecordVaccinationUseCase
	nextDueVaccineUC    *vaccinationUsecases.NextDueUseCase
	createTherapyModUC  *therapyUsecases.CreateModuleUseCase
	listTherapyModsUC   *therapyUsecases.ListModulesUseCase
	generatePackUC      *therapyUsecases.GeneratePackUseCase

	// Telemedicine
	createTeleRequestUC  *telemedUsecases.CreateTeleRequestUseCase
	updateTeleRequestUC  *telemedUsecases.UpdateTeleRequestUseCase
	createPrescriptionUC *telemedUsecases.CreatePrescriptionUseCase

	// Complaints
	createComplaintUC *complaintUsecases.CreateComplaintUseCase
	getComplaintUC    *complaintUsecases.GetComplaintUseCase
	listComplaintsUC  *complaintUsecases.ListComplaintsUseCase
	updateStatusUC    *complaintUsecases.UpdateStatusUseCase
	closeComplaintUC  *complaintUsecases.CloseComplaintUseCase
	uploadEvidenceUC  *complaintUsecases.UploadEvidenceUseCase
	getHistoryUC      *complaintUsecases.GetHistoryUseCase
	escalationSweepUC *complaintUsecases.EscalationSweepUseCase

	// Anchors
	submitPendingUC    *anchorUsecases.SubmitPendingUseCase
	retryAnchorsUC     *anchorUsecases.RetryAnchorsUseCase
	complaintAnchorsUC *anchorUsecases.GetComplaintAnchorsUseCase
	verifyAnchorUC     *anchorUsecases.VerifyAnchorUseCase

	// Analytics
	flushBufferUC *analyticsUsecases.FlushBufferUseCase
	emitEventUC   *analyticsUsecases.EmitEventUseCase
	getSummaryUC  *analyticsUsecases.GetSummaryUseCase

	// Dashboards
	overviewUC           *dashboardUsecases.GetOverviewUseCase
	timeSeriesUC         *dashboardUsecases.GetTimeSeriesUseCase
	heatmapUC            *dashboardUsecases.GetHeatmapUseCase
	categoriesUC         *dashboardUsecases.GetCategoryBreakdownUseCase
	demographicsUC       *dashboardUsecases.GetDemographicsUseCase
	topRegionsUC         *dashboardUsecases.GetTopRegionsUseCase
	refreshViewsUC       *dashboardUsecases.RefreshViewsUseCase
	viewStatsUC          *dashboardUsecases.GetViewStatsUseCase
	triageCountsUC       *dashboardUsecases.ListTriageCountsUseCase
	complaintDistrictsUC *dashboardUsecases.ListComplaintsByDistrictUseCase
	symptomHeatmapUC     *dashboardUsecases.ListSymptomHeatmapUseCase
	slaBreachesUC        *dashboardUsecases.ListSLABreachesUseCase

	// Audit
	listAuditUC   *auditUsecases.ListEntriesUseCase
	verifyChainUC *auditUsecases.VerifyChainUseCase

	// Outbox
	dispatchPendingUC *outboxUsecases.DispatchPendingUseCase

	// Admin
	createOfficerUC *adminUsecases.CreateOfficerUseCase
}

// initUseCases builds every use case from the repositories and domain
// services. Ordering matters only where one use case feeds another: the
// flush use case is the emit use case's overflow flusher, and the submit
// use case is the retry use case's submitter.
func (c *Container) initUseCases() {
	cfg := c.cfg
	log := c.log
	repos := c.repos

	ucs := &allUseCases{}
	c.ucs = ucs

	// Auth
	ucs.registerUC = authUsecases.NewRegisterUseCase(
		repos.userRepo, repos.profileRepo, c.hasher, c.tokenSvc, c.txManager, c.auditor, log)
	ucs.loginUC = authUsecases.NewLoginUseCase(
		repos.userRepo, c.hasher, c.tokenSvc, c.txManager, c.auditor, log)
	ucs.logoutUC = authUsecases.NewLogoutUseCase(c.tokenSvc, c.auditor, log)

	// Profile & erasure
	ucs.getProfileUC = profileUsecases.NewGetProfileUseCase(repos.userRepo, repos.profileRepo, log)
	ucs.updateProfileUC = profileUsecases.NewUpdateProfileUseCase(
		repos.userRepo, repos.profileRepo, c.txManager, c.auditor, log)
	ucs.exportProfileUC = profileUsecases.NewExportProfileUseCase(
		repos.userRepo, repos.profileRepo, c.consentChecker, c.txManager, c.auditor, log)

	// Every owned-data repository joins the erasure cascade; complaints and
	// analytics rows are anonymized instead of deleted.
	erasers := []userUsecases.OwnedDataEraser{
		repos.triageRepo,
		repos.neuroscreenRepo,
		repos.vaccinationRepo,
		repos.wellnessRepo,
		repos.syncEventRepo,
		repos.teleRequestRepo,
		repos.prescriptionRepo,
		repos.consentRepo,
		repos.outboxRepo,
	}
	ucs.eraseUserUC = userUsecases.NewEraseUserUseCase(
		repos.userRepo, repos.profileRepo, repos.tokenRepo, erasers,
		repos.complaintRepo, repos.eventRepo, c.txManager, c.auditor, log)

	// Consent
	ucs.grantConsentUC = consentUsecases.NewGrantConsentUseCase(
		repos.consentRepo, cfg.Consent.DocumentVersion, c.txManager, c.auditor, log)
	ucs.listConsentsUC = consentUsecases.NewListConsentsUseCase(
		repos.consentRepo, cfg.Consent.DocumentVersion, log)

	// Sync gateway
	ucs.submitBatchUC = syncUsecases.NewSubmitBatchUseCase(
		repos.syncEventRepo, repos.profileRepo, repos.wellnessRepo, c.txManager, c.auditor, log)

	// Triage
	ucs.createSessionUC = triageUsecases.NewCreateSessionUseCase(
		c.triageEngine, repos.triageRepo, c.sanitizer, c.txManager, c.auditor, log)
	ucs.getSessionUC = triageUsecases.NewGetSessionUseCase(repos.triageRepo, log)

	// Child health
	ucs.submitScreeningUC = neuroscreenUsecases.NewSubmitScreeningUseCase(
		repos.neuroscreenRepo, c.txManager, c.auditor, log)
	ucs.getScreeningUC = neuroscreenUsecases.NewGetResultUseCase(repos.neuroscreenRepo, log)
	ucs.recordVaccinationUC = vaccinationUsecases.NewRecordVaccinationUseCase(
		repos.vaccinationRepo, c.sanitizer, c.txManager, c.auditor, log)
	ucs.nextDueVaccineUC = vaccinationUsecases.NewNextDueUseCase(
		repos.vaccinationRepo, repos.profileRepo, log)
	ucs.createTherapyModUC = therapyUsecases.NewCreateModuleUseCase(
		repos.therapyModRepo, c.sanitizer, c.txManager, c.auditor, log)
	ucs.listTherapyModsUC = therapyUsecases.NewListModulesUseCase(repos.therapyModRepo, log)
	// Packs share the encrypted content-addressed store with complaint
	// evidence; the returned hash is the client-facing checksum.
	ucs.generatePackUC = therapyUsecases.NewGeneratePackUseCase(
		repos.therapyModRepo, repos.therapyPackRepo, c.evidenceStore,
		c.txManager, c.auditor, log)

	// Telemedicine
	ucs.createTeleRequestUC = telemedUsecases.NewCreateTeleRequestUseCase(
		repos.teleRequestRepo, c.sanitizer, c.txManager, c.auditor, log)
	ucs.updateTeleRequestUC = telemedUsecases.NewUpdateTeleRequestUseCase(
		repos.teleRequestRepo, c.txManager, c.auditor, log)
	ucs.createPrescriptionUC = telemedUsecases.NewCreatePrescriptionUseCase(
		repos.teleRequestRepo, repos.prescriptionRepo, repos.userRepo, repos.outboxRepo,
		c.sanitizer, c.txManager, c.auditor, log)

	// Complaints
	ucs.createComplaintUC = complaintUsecases.NewCreateComplaintUseCase(
		repos.complaintRepo, repos.slaRuleRepo, repos.historyRepo, repos.anchorRepo,
		c.sealer, c.sanitizer, c.txManager, c.auditor, log)
	ucs.getComplaintUC = complaintUsecases.NewGetComplaintUseCase(
		repos.complaintRepo, repos.evidenceRepo, c.sealer, log)
	ucs.listComplaintsUC = complaintUsecases.NewListComplaintsUseCase(repos.complaintRepo, log)
	ucs.updateStatusUC = complaintUsecases.NewUpdateStatusUseCase(
		repos.complaintRepo, repos.historyRepo, repos.anchorRepo,
		c.sanitizer, c.txManager, c.auditor, log)
	ucs.closeComplaintUC = complaintUsecases.NewCloseComplaintUseCase(
		repos.complaintRepo, repos.historyRepo, repos.anchorRepo, repos.userRepo,
		repos.outboxRepo, c.sanitizer, c.txManager, c.auditor, log)
	ucs.uploadEvidenceUC = complaintUsecases.NewUploadEvidenceUseCase(
		repos.complaintRepo, repos.evidenceRepo, c.evidenceStore, c.txManager, c.auditor, log)
	ucs.getHistoryUC = complaintUsecases.NewGetHistoryUseCase(
		repos.complaintRepo, repos.historyRepo, log)
	ucs.escalationSweepUC = complaintUsecases.NewEscalationSweepUseCase(
		repos.complaintRepo, repos.slaRuleRepo, repos.historyRepo, repos.anchorRepo,
		repos.userRepo, repos.outboxRepo, c.txManager, c.auditor, log)

	// Anchors
	ucs.submitPendingUC = anchorUsecases.NewSubmitPendingUseCase(
		repos.anchorRepo, c.chainClient, c.backoff, cfg.Chain.MaxAttempts, log)
	ucs.retryAnchorsUC = anchorUsecases.NewRetryAnchorsUseCase(
		repos.anchorRepo, ucs.submitPendingUC, c.anchorRunLock, c.txManager, c.auditor, log)
	ucs.complaintAnchorsUC = anchorUsecases.NewGetComplaintAnchorsUseCase(
		repos.anchorRepo, repos.complaintRepo, log)
	ucs.verifyAnchorUC = anchorUsecases.NewVerifyAnchorUseCase(
		repos.anchorRepo, repos.complaintRepo, repos.slaRuleRepo, log)

	// Analytics
	kThreshold := int64(cfg.Analytics.KThreshold)
	ucs.flushBufferUC = analyticsUsecases.NewFlushBufferUseCase(c.buffer, repos.aggregateRepo, log)
	ucs.emitEventUC = analyticsUsecases.NewEmitEventUseCase(
		repos.eventRepo, repos.profileRepo, c.consentChecker, c.buffer, ucs.flushBufferUC,
		c.txManager, c.auditor, log)
	ucs.getSummaryUC = analyticsUsecases.NewGetSummaryUseCase(repos.aggregateRepo, kThreshold, log)
	c.emitter = analyticsServices.NewEmitter(ucs.emitEventUC, log)

	// Dashboards
	ucs.overviewUC = dashboardUsecases.NewGetOverviewUseCase(repos.aggregateRepo, kThreshold, log)
	ucs.timeSeriesUC = dashboardUsecases.NewGetTimeSeriesUseCase(repos.aggregateRepo, kThreshold, log)
	ucs.heatmapUC = dashboardUsecases.NewGetHeatmapUseCase(repos.aggregateRepo, kThreshold, log)
	ucs.categoriesUC = dashboardUsecases.NewGetCategoryBreakdownUseCase(repos.aggregateRepo, kThreshold, log)
	ucs.demographicsUC = dashboardUsecases.NewGetDemographicsUseCase(repos.aggregateRepo, kThreshold, log)
	ucs.topRegionsUC = dashboardUsecases.NewGetTopRegionsUseCase(repos.aggregateRepo, kThreshold, log)
	ucs.refreshViewsUC = dashboardUsecases.NewRefreshViewsUseCase(repos.dashboardRepo, c.dashboardCache, log)
	ucs.viewStatsUC = dashboardUsecases.NewGetViewStatsUseCase(repos.dashboardRepo, log)
	ucs.triageCountsUC = dashboardUsecases.NewListTriageCountsUseCase(repos.dashboardRepo, log)
	ucs.complaintDistrictsUC = dashboardUsecases.NewListComplaintsByDistrictUseCase(repos.dashboardRepo, log)
	ucs.symptomHeatmapUC = dashboardUsecases.NewListSymptomHeatmapUseCase(repos.dashboardRepo, log)
	ucs.slaBreachesUC = dashboardUsecases.NewListSLABreachesUseCase(repos.dashboardRepo, log)

	// Audit
	ucs.listAuditUC = auditUsecases.NewListEntriesUseCase(repos.auditRepo, log)
	ucs.verifyChainUC = auditUsecases.NewVerifyChainUseCase(repos.auditRepo, log)

	// Outbox
	senders := map[outbox.Channel]outbox.Sender{
		outbox.ChannelEmail: c.emailSender,
		outbox.ChannelSMS:   c.smsSender,
	}
	ucs.dispatchPendingUC = outboxUsecases.NewDispatchPendingUseCase(
		repos.outboxRepo, senders, cfg.Outbox.MaxAttempts, log)

	// Admin
	ucs.createOfficerUC = adminUsecases.NewCreateOfficerUseCase(
		repos.userRepo, repos.profileRepo, c.hasher, c.txManager, c.auditor, log)
}
