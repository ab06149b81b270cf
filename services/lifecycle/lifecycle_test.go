package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"

	notificationRepo "proconecta/database/repository/notification"
	serviceRepo "proconecta/database/repository/service"
	userRepo "proconecta/database/repository/user"
	"proconecta/models"
	"proconecta/services/notification"
	"proconecta/utils"
)

type fixture struct {
	svc      *DefaultLifecycleService
	services *serviceRepo.MemoryServiceRepo
	users    *userRepo.MemoryUserRepo
	notifs   *notificationRepo.MemoryNotificationRepo

	mu       sync.Mutex
	messages []models.Message
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		services: serviceRepo.NewMemoryServiceRepo(),
		users:    userRepo.NewMemoryUserRepo(),
		notifs:   notificationRepo.NewMemoryNotificationRepo(),
	}
	f.services.NotificationSink = f.notifs.Ingest
	f.services.MessageSink = func(m models.Message) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.messages = append(f.messages, m)
	}
	f.svc = &DefaultLifecycleService{
		Services: f.services,
		Users:    f.users,
		Notifier: &notification.DefaultNotificationService{Repo: f.notifs},
	}

	for _, u := range []models.User{
		{ID: "c1", Username: "client_one", Name: "Client One", Email: "c1@test.dev", UserType: models.UserTypeClient},
		{ID: "p1", Username: "provider_one", Name: "Provider One", Email: "p1@test.dev", UserType: models.UserTypeProvider, Categories: []string{"plumbing"}},
		{ID: "p2", Username: "provider_two", Name: "Provider Two", Email: "p2@test.dev", UserType: models.UserTypeProvider, Categories: []string{"plumbing"}},
	} {
		u := u
		if err := f.users.Create(&u); err != nil {
			t.Fatalf("seeding user %s: %v", u.ID, err)
		}
	}
	return f
}

func (f *fixture) createPending(t *testing.T) *models.ServiceRequest {
	t.Helper()
	req, err := f.svc.Create(context.Background(), "c1", CreateInput{
		Title:       "Leaking sink",
		ServiceType: "plumbing",
		Description: "Kitchen sink drips overnight",
		Location:    models.Location{Latitude: -23.5505, Longitude: -46.6333},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return req
}

func TestCreateSetsPendingUnassigned(t *testing.T) {
	f := newFixture(t)
	req := f.createPending(t)

	if req.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", req.Status, models.StatusPending)
	}
	if req.ProviderID != "" {
		t.Errorf("providerId = %q, want empty", req.ProviderID)
	}
	if req.ID == "" || req.CreatedAt.IsZero() {
		t.Error("expected generated ID and timestamps")
	}
}

func TestCreateRejectsProviderActor(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), "p1", CreateInput{
		Title:       "x",
		ServiceType: "plumbing",
		Description: "y",
		Location:    models.Location{Latitude: 0, Longitude: 0},
	})
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name  string
		input CreateInput
	}{
		{"empty title", CreateInput{ServiceType: "plumbing", Description: "d"}},
		{"empty service type", CreateInput{Title: "t", Description: "d"}},
		{"empty description", CreateInput{Title: "t", ServiceType: "plumbing"}},
		{"latitude out of range", CreateInput{Title: "t", ServiceType: "plumbing", Description: "d",
			Location: models.Location{Latitude: 91, Longitude: 0}}},
		{"longitude out of range", CreateInput{Title: "t", ServiceType: "plumbing", Description: "d",
			Location: models.Location{Latitude: 0, Longitude: -181}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), "c1", tc.input)
			var verr *utils.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestAcceptDemandAssignsProvider(t *testing.T) {
	f := newFixture(t)
	req := f.createPending(t)

	updated, err := f.svc.AcceptDemand(context.Background(), "p1", req.ID)
	if err != nil {
		t.Fatalf("AcceptDemand: %v", err)
	}
	if updated.Status != models.StatusAccepted {
		t.Errorf("status = %q, want %q", updated.Status, models.StatusAccepted)
	}
	if updated.ProviderID != "p1" || updated.ProviderName != "Provider One" {
		t.Errorf("provider = %q/%q, want p1/Provider One", updated.ProviderID, updated.ProviderName)
	}
	if updated.AcceptedAt == nil {
		t.Error("acceptedAt not stamped")
	}

	notifs, _ := f.notifs.ListByUser("c1")
	if len(notifs) != 1 {
		t.Fatalf("client notifications = %d, want 1", len(notifs))
	}
	if notifs[0].ServiceID != req.ID {
		t.Errorf("notification serviceId = %q, want %q", notifs[0].ServiceID, req.ID)
	}
}

func TestAcceptDemandExactlyOneWinner(t *testing.T) {
	f := newFixture(t)
	req := f.createPending(t)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, provider := range []string{"p1", "p2"} {
		wg.Add(1)
		go func(i int, provider string) {
			defer wg.Done()
			_, results[i] = f.svc.AcceptDemand(context.Background(), provider, req.ID)
		}(i, provider)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			var invalid *utils.InvalidStateTransitionError
			if !errors.As(err, &invalid) {
				t.Errorf("loser error = %v, want InvalidStateTransitionError", err)
			}
			conflicts++
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("wins = %d, conflicts = %d, want exactly one of each", wins, conflicts)
	}

	final, err := f.services.GetByID(req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.ProviderID != "p1" && final.ProviderID != "p2" {
		t.Errorf("final providerId = %q, want one of the contenders", final.ProviderID)
	}
}

func TestAcceptDemandRejectsNonProvider(t *testing.T) {
	f := newFixture(t)
	req := f.createPending(t)

	_, err := f.svc.AcceptDemand(context.Background(), "c1", req.ID)
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestFullLifecycleAndDoubleCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	if _, err := f.svc.AcceptDemand(ctx, "p1", req.ID); err != nil {
		t.Fatalf("AcceptDemand: %v", err)
	}
	if _, err := f.svc.Start(ctx, "p1", req.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	done, err := f.svc.Complete(ctx, "p1", req.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.Status != models.StatusCompleted || done.CompletedAt == nil {
		t.Errorf("status = %q, completedAt = %v", done.Status, done.CompletedAt)
	}

	_, err = f.svc.Complete(ctx, "p1", req.ID)
	var invalid *utils.InvalidStateTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("second Complete err = %v, want InvalidStateTransitionError", err)
	}
	if invalid.Current != string(models.StatusCompleted) {
		t.Errorf("reported state = %q, want %q", invalid.Current, models.StatusCompleted)
	}
}

func TestIllegalEdges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.createPending(t)
	cases := []struct {
		name string
		call func() error
	}{
		{"start from pending", func() error {
			_, err := f.svc.Start(ctx, "p1", pending.ID)
			return err
		}},
		{"complete from pending", func() error {
			_, err := f.svc.Complete(ctx, "p1", pending.ID)
			return err
		}},
		{"accept proposal without negotiation", func() error {
			_, err := f.svc.AcceptProposal(ctx, "c1", pending.ID, 1)
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var invalid *utils.InvalidStateTransitionError
			if !errors.As(err, &invalid) {
				t.Errorf("err = %v, want InvalidStateTransitionError", err)
			}
		})
	}

	accepted := f.createPending(t)
	if _, err := f.svc.AcceptDemand(ctx, "p1", accepted.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.AcceptDemand(ctx, "p2", accepted.ID); err == nil {
		t.Error("accepting an already-assigned demand should fail")
	}
	if _, err := f.svc.Start(ctx, "p2", accepted.ID); err == nil {
		t.Error("starting someone else's job should fail")
	}
}

func TestProposeValueOpensNegotiation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	updated, err := f.svc.ProposeValue(ctx, "p1", req.ID, 150)
	if err != nil {
		t.Fatalf("ProposeValue: %v", err)
	}
	if updated.Status != models.StatusNegotiating {
		t.Errorf("status = %q, want %q", updated.Status, models.StatusNegotiating)
	}
	if updated.ProposedValue != 150 || updated.ProposalVersion != 1 {
		t.Errorf("proposedValue = %v version = %d, want 150 / 1", updated.ProposedValue, updated.ProposalVersion)
	}
	if updated.ProviderID != "p1" {
		t.Errorf("providerId = %q, want p1 after first proposal", updated.ProviderID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) != 1 {
		t.Fatalf("proposal messages = %d, want 1", len(f.messages))
	}
	if f.messages[0].Type != models.MessageProposal || f.messages[0].ProposedValue != 150 {
		t.Errorf("message = %+v, want proposal with value 150", f.messages[0])
	}
}

func TestProposeValueOnlyNegotiatingProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	if _, err := f.svc.ProposeValue(ctx, "p1", req.ID, 100); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.ProposeValue(ctx, "p2", req.ID, 90)
	var invalid *utils.InvalidStateTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("rival proposal err = %v, want InvalidStateTransitionError", err)
	}
}

func TestAcceptProposalLocksValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	if _, err := f.svc.ProposeValue(ctx, "p1", req.ID, 200); err != nil {
		t.Fatal(err)
	}
	updated, err := f.svc.AcceptProposal(ctx, "c1", req.ID, 1)
	if err != nil {
		t.Fatalf("AcceptProposal: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q", updated.Status, models.StatusInProgress)
	}
	if updated.Value != 200 {
		t.Errorf("value = %v, want 200", updated.Value)
	}
	if updated.ProposedValue != 0 {
		t.Errorf("proposedValue = %v, want cleared", updated.ProposedValue)
	}
}

func TestAcceptProposalRejectsStaleVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	if _, err := f.svc.ProposeValue(ctx, "p1", req.ID, 200); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.ProposeValue(ctx, "p1", req.ID, 250); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.AcceptProposal(ctx, "c1", req.ID, 1)
	var invalid *utils.InvalidStateTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("stale accept err = %v, want InvalidStateTransitionError", err)
	}

	current, _ := f.services.GetByID(req.ID)
	if current.Status != models.StatusNegotiating || current.ProposedValue != 250 {
		t.Errorf("negotiation state mutated by stale accept: %+v", current)
	}
}

func TestAcceptProposalOnlyClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	if _, err := f.svc.ProposeValue(ctx, "p1", req.ID, 200); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.AcceptProposal(ctx, "p1", req.ID, 1)
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCancelFromEveryNonTerminalState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	advance := map[string]func(id string){
		"pending":     func(string) {},
		"negotiating": func(id string) { f.svc.ProposeValue(ctx, "p1", id, 100) },
		"accepted":    func(id string) { f.svc.AcceptDemand(ctx, "p1", id) },
		"in_progress": func(id string) {
			f.svc.AcceptDemand(ctx, "p1", id)
			f.svc.Start(ctx, "p1", id)
		},
	}
	for state, setup := range advance {
		t.Run(state, func(t *testing.T) {
			req := f.createPending(t)
			setup(req.ID)
			updated, err := f.svc.Cancel(ctx, "c1", req.ID)
			if err != nil {
				t.Fatalf("Cancel from %s: %v", state, err)
			}
			if updated.Status != models.StatusCancelled {
				t.Errorf("status = %q, want %q", updated.Status, models.StatusCancelled)
			}
		})
	}
}

func TestCancelRejectsTerminalAndOutsiders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	if _, err := f.svc.Cancel(ctx, "p2", req.ID); err == nil {
		t.Error("outsider cancel should fail")
	}

	f.svc.AcceptDemand(ctx, "p1", req.ID)
	f.svc.Start(ctx, "p1", req.ID)
	f.svc.Complete(ctx, "p1", req.ID)

	_, err := f.svc.Cancel(ctx, "c1", req.ID)
	var invalid *utils.InvalidStateTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("cancel completed err = %v, want InvalidStateTransitionError", err)
	}
}

func TestAttachPhotoAppendsRefForParties(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	updated, err := f.svc.AttachPhoto(ctx, "c1", req.ID, "services/"+req.ID+"/photo-1")
	if err != nil {
		t.Fatalf("client AttachPhoto: %v", err)
	}
	if len(updated.PhotoRefs) != 1 || updated.PhotoRefs[0] != "services/"+req.ID+"/photo-1" {
		t.Errorf("photoRefs = %v, want the uploaded ref persisted", updated.PhotoRefs)
	}

	if _, err := f.svc.AcceptDemand(ctx, "p1", req.ID); err != nil {
		t.Fatal(err)
	}
	updated, err = f.svc.AttachPhoto(ctx, "p1", req.ID, "services/"+req.ID+"/photo-2")
	if err != nil {
		t.Fatalf("provider AttachPhoto: %v", err)
	}
	if len(updated.PhotoRefs) != 2 {
		t.Errorf("photoRefs = %v, want both refs persisted", updated.PhotoRefs)
	}
}

func TestAttachPhotoRejectsOutsidersAndTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.createPending(t)

	_, err := f.svc.AttachPhoto(ctx, "p2", req.ID, "services/"+req.ID+"/sneaky")
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("outsider err = %v, want ValidationError", err)
	}

	if _, err := f.svc.AttachPhoto(ctx, "c1", req.ID, "  "); !errors.As(err, &verr) {
		t.Errorf("blank ref err = %v, want ValidationError", err)
	}

	f.svc.AcceptDemand(ctx, "p1", req.ID)
	f.svc.Start(ctx, "p1", req.ID)
	f.svc.Complete(ctx, "p1", req.ID)

	_, err = f.svc.AttachPhoto(ctx, "c1", req.ID, "services/"+req.ID+"/late")
	var invalid *utils.InvalidStateTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("terminal err = %v, want InvalidStateTransitionError", err)
	}

	current, err := f.svc.Get(req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(current.PhotoRefs) != 0 {
		t.Errorf("photoRefs = %v, want none after rejected attaches", current.PhotoRefs)
	}
}

func TestGetUnknownServiceIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get("missing")
	var notFound *utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}
