package http

import (
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler        *handlers.AuthHandler
	userHandler        *handlers.UserHandler
	profileHandler     *handlers.ProfileHandler
	consentHandler     *handlers.ConsentHandler
	syncHandler        *handlers.SyncHandler
	triageHandler      *handlers.TriageHandler
	neuroscreenHandler *handlers.NeuroscreenHandler
	vaccinationHandler *handlers.VaccinationHandler
	therapyHandler     *handlers.TherapyHandler
	telemedHandler     *handlers.TelemedHandler
	complaintHandler   *handlers.ComplaintHandler
	anchorHandler      *handlers.AnchorHandler
	analyticsHandler   *handlers.AnalyticsHandler
	dashboardHandler   *handlers.DashboardHandler
	auditHandler       *handlers.AuditHandler
	systemHandler      *handlers.SystemHandler
}

// initHandlers builds the HTTP handlers from the use cases. Must run after
// initUseCases.
func (c *Container) initHandlers() {
	cfg := c.cfg
	ucs := c.ucs

	hdlrs := &allHandlers{}
	c.hdlrs = hdlrs

	hdlrs.authHandler = handlers.NewAuthHandler(ucs.registerUC, ucs.loginUC, ucs.logoutUC)
	hdlrs.userHandler = handlers.NewUserHandler(ucs.eraseUserUC)
	hdlrs.profileHandler = handlers.NewProfileHandler(
		ucs.getProfileUC, ucs.updateProfileUC, ucs.exportProfileUC)
	hdlrs.consentHandler = handlers.NewConsentHandler(ucs.grantConsentUC, ucs.listConsentsUC)
	hdlrs.syncHandler = handlers.NewSyncHandler(ucs.submitBatchUC)

	// Triage outcomes feed the analytics pipeline through the emitter;
	// consent gating happens inside the emit use case.
	hdlrs.triageHandler = handlers.NewTriageHandler(ucs.createSessionUC, ucs.getSessionUC, c.emitter)

	// Screenings and vaccinations feed the same emitter as triage.
	hdlrs.neuroscreenHandler = handlers.NewNeuroscreenHandler(
		ucs.submitScreeningUC, ucs.getScreeningUC, c.emitter)
	hdlrs.vaccinationHandler = handlers.NewVaccinationHandler(
		ucs.recordVaccinationUC, ucs.nextDueVaccineUC, c.emitter)
	hdlrs.therapyHandler = handlers.NewTherapyHandler(
		ucs.createTherapyModUC, ucs.listTherapyModsUC, ucs.generatePackUC)

	hdlrs.telemedHandler = handlers.NewTelemedHandler(
		ucs.createTeleRequestUC, ucs.updateTeleRequestUC, ucs.createPrescriptionUC)
	hdlrs.complaintHandler = handlers.NewComplaintHandler(
		ucs.createComplaintUC, ucs.getComplaintUC, ucs.listComplaintsUC,
		ucs.updateStatusUC, ucs.closeComplaintUC, ucs.uploadEvidenceUC,
		ucs.getHistoryUC, ucs.escalationSweepUC)
	hdlrs.anchorHandler = handlers.NewAnchorHandler(
		ucs.complaintAnchorsUC, ucs.verifyAnchorUC, ucs.retryAnchorsUC)
	hdlrs.analyticsHandler = handlers.NewAnalyticsHandler(ucs.emitEventUC, ucs.getSummaryUC)
	hdlrs.dashboardHandler = handlers.NewDashboardHandler(
		ucs.overviewUC, ucs.timeSeriesUC, ucs.heatmapUC, ucs.categoriesUC,
		ucs.demographicsUC, ucs.topRegionsUC, ucs.refreshViewsUC, ucs.viewStatsUC,
		ucs.triageCountsUC, ucs.complaintDistrictsUC, ucs.symptomHeatmapUC,
		ucs.slaBreachesUC, c.dashboardCache)
	hdlrs.auditHandler = handlers.NewAuditHandler(ucs.listAuditUC, ucs.verifyChainUC)
	hdlrs.systemHandler = handlers.NewSystemHandler(cfg.Server.MinAppVersion)
}
