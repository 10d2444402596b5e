package service

import (
	"context"
	"testing"

	"errortrack-be/internal/dto"
	"errortrack-be/internal/repository/memory"
)

func newAppFixture() (*fakeFactory, IApplicationService) {
	factory := newFakeFactory()
	return factory, NewApplicationService(factory, memory.NewApplicationCache())
}

func TestResolveOrCreateReturnsExistingByApiKey(t *testing.T) {
	factory, svc := newAppFixture()
	seeded := seedApplication(factory, "Checkout", true, false)

	app, err := svc.ResolveOrCreate(context.Background(), seeded.ApiKey, "SomeOtherName")
	if err != nil {
		t.Fatalf("ResolveOrCreate() error = %v", err)
	}
	if app.Id != seeded.Id {
		t.Error("api key match must win over the supplied name")
	}
}

func TestResolveOrCreateMatchesNameExactly(t *testing.T) {
	factory, svc := newAppFixture()
	seeded := seedApplication(factory, "Checkout", true, false)

	app, err := svc.ResolveOrCreate(context.Background(), "", "Checkout")
	if err != nil {
		t.Fatalf("ResolveOrCreate() error = %v", err)
	}
	if app.Id != seeded.Id {
		t.Error("exact name match must resolve the existing application")
	}

	// Case differs: a new application is provisioned, not a fuzzy match.
	other, err := svc.ResolveOrCreate(context.Background(), "", "checkout")
	if err != nil {
		t.Fatalf("ResolveOrCreate() error = %v", err)
	}
	if other.Id == seeded.Id {
		t.Error("name matching is case-sensitive")
	}
}

func TestResolveOrCreateAutoProvisions(t *testing.T) {
	factory, svc := newAppFixture()

	app, err := svc.ResolveOrCreate(context.Background(), "", "Fresh")
	if err != nil {
		t.Fatalf("ResolveOrCreate() error = %v", err)
	}
	if !app.IsActive || app.IsPaused {
		t.Error("auto-provisioned application must be active and unpaused")
	}
	if app.ApiKey == "" {
		t.Error("auto-provisioned application must carry a synthesized api key")
	}

	stored, _ := factory.uow.appRepo.FindByName(context.Background(), "Fresh")
	if stored == nil {
		t.Fatal("application must be persisted")
	}
}

func TestResolveOrCreateRequiresAName(t *testing.T) {
	_, svc := newAppFixture()

	if _, err := svc.ResolveOrCreate(context.Background(), "", ""); err == nil {
		t.Error("provisioning without a name must fail")
	}
}

func TestResolveOrCreateServesCachedApplication(t *testing.T) {
	factory, svc := newAppFixture()
	seeded := seedApplication(factory, "Hot", true, false)

	if _, err := svc.ResolveOrCreate(context.Background(), seeded.ApiKey, ""); err != nil {
		t.Fatalf("warm-up ResolveOrCreate() error = %v", err)
	}

	// Drop the row; a warm cache entry still resolves within its TTL.
	_ = factory.uow.appRepo.Delete(context.Background(), seeded.Id)

	app, err := svc.ResolveOrCreate(context.Background(), seeded.ApiKey, "")
	if err != nil {
		t.Fatalf("cached ResolveOrCreate() error = %v", err)
	}
	if app.Id != seeded.Id {
		t.Error("expected the cached application")
	}
}

func TestUpdateInvalidatesCache(t *testing.T) {
	factory, svc := newAppFixture()
	seeded := seedApplication(factory, "Gate", true, false)

	if _, err := svc.ResolveOrCreate(context.Background(), seeded.ApiKey, ""); err != nil {
		t.Fatalf("warm-up ResolveOrCreate() error = %v", err)
	}

	paused := true
	if _, err := svc.Update(context.Background(), &dto.UpdateApplicationRequest{
		Id:       seeded.Id,
		Name:     seeded.Name,
		IsPaused: &paused,
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	app, err := svc.ResolveOrCreate(context.Background(), seeded.ApiKey, "")
	if err != nil {
		t.Fatalf("ResolveOrCreate() error = %v", err)
	}
	if !app.IsPaused {
		t.Error("pause toggle must be visible to the ingestion path immediately")
	}
}

func TestDeleteCascadesLogsAndAlerts(t *testing.T) {
	factory, svc := newAppFixture()
	seeded := seedApplication(factory, "Doomed", true, false)

	factoryCtx := context.Background()
	_, _, errSvc := newIngestFixtureWith(factory)
	if _, err := errSvc.Ingest(factoryCtx, &dto.ReportErrorRequest{
		ApiKey:  seeded.ApiKey,
		AppName: seeded.Name,
		Message: "boom",
	}, "", ""); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if err := svc.Delete(factoryCtx, seeded.Id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(factory.uow.errRepo.logs) != 0 {
		t.Error("application delete must cascade to its error logs")
	}
	if len(factory.uow.alertRepo.alerts) != 0 {
		t.Error("application delete must cascade to its alerts")
	}
	app, _ := factory.uow.appRepo.FindById(factoryCtx, seeded.Id)
	if app != nil {
		t.Error("application row must be gone")
	}
}

// newIngestFixtureWith builds an error log service over an existing factory so
// tests can mix registry and ingestion operations on shared state.
func newIngestFixtureWith(factory *fakeFactory) (*fakeFactory, *fakeDispatcher, IErrorLogService) {
	dispatcher := &fakeDispatcher{}
	appService := NewApplicationService(factory, memory.NewApplicationCache())
	svc := NewErrorLogService(
		factory,
		appService,
		dispatcher,
		nil,
		nopLogger{},
		"ops@example.com",
		EvictionPolicy{MaxLogsPerApp: 10, KeepResolvedLogs: 5},
	)
	return factory, dispatcher, svc
}
