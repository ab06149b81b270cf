package rating

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	ratingRepo "proconecta/database/repository/rating"
	serviceRepo "proconecta/database/repository/service"
	userRepo "proconecta/database/repository/user"
	"proconecta/models"
	"proconecta/utils"
)

type fixture struct {
	svc      *DefaultRatingService
	services *serviceRepo.MemoryServiceRepo
	users    *userRepo.MemoryUserRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	services := serviceRepo.NewMemoryServiceRepo()
	users := userRepo.NewMemoryUserRepo()
	ratings := ratingRepo.NewMemoryRatingRepo(services, users)

	for _, u := range []models.User{
		{ID: "c1", Username: "client_one", Name: "Client One", Email: "c1@test.dev", UserType: models.UserTypeClient},
		{ID: "p1", Username: "provider_one", Name: "Provider One", Email: "p1@test.dev", UserType: models.UserTypeProvider},
	} {
		u := u
		if err := users.Create(&u); err != nil {
			t.Fatalf("seeding user %s: %v", u.ID, err)
		}
	}

	return &fixture{
		svc:      &DefaultRatingService{Ratings: ratings, Services: services, Users: users},
		services: services,
		users:    users,
	}
}

func (f *fixture) seedCompleted(id string) {
	now := time.Now()
	f.services.Put(models.ServiceRequest{
		ID:          id,
		Title:       "Job " + id,
		ServiceType: "plumbing",
		ClientID:    "c1",
		ClientName:  "Client One",
		ProviderID:  "p1",
		Status:      models.StatusCompleted,
		Value:       100,
		CreatedAt:   now,
		UpdatedAt:   now,
		CompletedAt: &now,
	})
}

func TestSubmitValidatesRange(t *testing.T) {
	f := newFixture(t)
	f.seedCompleted("s1")

	for _, bad := range []int{0, -1, 6} {
		_, err := f.svc.Submit(context.Background(), "c1", SubmitInput{ServiceID: "s1", Rating: bad})
		var verr *utils.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("rating %d: err = %v, want ValidationError", bad, err)
		}
	}
}

func TestSubmitRequiresCompletedRequest(t *testing.T) {
	f := newFixture(t)
	f.services.Put(models.ServiceRequest{
		ID: "s1", ClientID: "c1", ProviderID: "p1", Status: models.StatusInProgress,
	})

	_, err := f.svc.Submit(context.Background(), "c1", SubmitInput{ServiceID: "s1", Rating: 5})
	var invalid *utils.InvalidStateTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidStateTransitionError", err)
	}
}

func TestSubmitRejectsOutsiders(t *testing.T) {
	f := newFixture(t)
	f.seedCompleted("s1")

	_, err := f.svc.Submit(context.Background(), "someone", SubmitInput{ServiceID: "s1", Rating: 4})
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestClientRatesProviderUpdatesAggregate(t *testing.T) {
	f := newFixture(t)
	f.seedCompleted("s1")
	f.seedCompleted("s2")

	res1, err := f.svc.Submit(context.Background(), "c1", SubmitInput{ServiceID: "s1", Rating: 4, Comment: "good"})
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if res1.SubjectID != "p1" || res1.Average != 4 || res1.TotalRatings != 1 {
		t.Errorf("first result = %+v, want subject p1 avg 4 count 1", res1)
	}

	res2, err := f.svc.Submit(context.Background(), "c1", SubmitInput{ServiceID: "s2", Rating: 5})
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if math.Abs(res2.Average-4.5) > 1e-9 || res2.TotalRatings != 2 {
		t.Errorf("second result avg = %v count = %d, want 4.5 / 2", res2.Average, res2.TotalRatings)
	}

	provider, _ := f.users.GetByID("p1")
	if math.Abs(provider.Rating-4.5) > 1e-9 || provider.TotalRatings != 2 {
		t.Errorf("provider profile avg = %v count = %d, want 4.5 / 2", provider.Rating, provider.TotalRatings)
	}
}

func TestDuplicateRatingRejected(t *testing.T) {
	f := newFixture(t)
	f.seedCompleted("s1")
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, "c1", SubmitInput{ServiceID: "s1", Rating: 4}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	_, err := f.svc.Submit(ctx, "c1", SubmitInput{ServiceID: "s1", Rating: 1})
	var dup *utils.DuplicateRatingError
	if !errors.As(err, &dup) {
		t.Fatalf("repeat Submit err = %v, want DuplicateRatingError", err)
	}

	provider, _ := f.users.GetByID("p1")
	if provider.Rating != 4 || provider.TotalRatings != 1 {
		t.Errorf("aggregate moved on duplicate: avg = %v count = %d", provider.Rating, provider.TotalRatings)
	}
}

func TestTwoSidesRateIndependently(t *testing.T) {
	f := newFixture(t)
	f.seedCompleted("s1")
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, "c1", SubmitInput{ServiceID: "s1", Rating: 5}); err != nil {
		t.Fatalf("client Submit: %v", err)
	}
	res, err := f.svc.Submit(ctx, "p1", SubmitInput{ServiceID: "s1", Rating: 3, Comment: "late payment"})
	if err != nil {
		t.Fatalf("provider Submit: %v", err)
	}
	if res.SubjectID != "c1" || res.Average != 3 {
		t.Errorf("provider-side result = %+v, want subject c1 avg 3", res)
	}

	client, _ := f.users.GetByID("c1")
	if client.ClientRating != 3 || client.TotalClientRatings != 1 {
		t.Errorf("client profile = %v/%d, want 3/1", client.ClientRating, client.TotalClientRatings)
	}
	provider, _ := f.users.GetByID("p1")
	if provider.Rating != 5 {
		t.Errorf("provider rating = %v, want 5 untouched by client-space write", provider.Rating)
	}
}

func TestListForUserHydratesReviewer(t *testing.T) {
	f := newFixture(t)
	f.seedCompleted("s1")
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, "c1", SubmitInput{ServiceID: "s1", Rating: 4, Comment: "solid work"}); err != nil {
		t.Fatal(err)
	}

	views, err := f.svc.ListForUser("p1", models.SpaceProvider)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	v := views[0]
	if v.Rating != 4 || v.Comment != "solid work" || v.ReviewerName != "Client One" || v.ServiceType != "plumbing" {
		t.Errorf("view = %+v", v)
	}
}

func TestListForUnknownUserIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ListForUser("ghost", models.SpaceProvider)
	var notFound *utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}
