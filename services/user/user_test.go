package user

import (
	"errors"
	"testing"

	userRepo "proconecta/database/repository/user"
	"proconecta/models"
	"proconecta/utils"

	"golang.org/x/crypto/bcrypt"
)

// memorySessionStore keeps session hashes in a map, mirroring what the
// redis-backed store persists for the auth middleware to check.
type memorySessionStore struct {
	hashes map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{hashes: make(map[string]string)}
}

func (s *memorySessionStore) Save(userID, token string) error {
	s.hashes[userID] = utils.HashToken(token)
	return nil
}

func (s *memorySessionStore) Delete(userID string) error {
	delete(s.hashes, userID)
	return nil
}

func newService() *DefaultUserService {
	return &DefaultUserService{Repo: userRepo.NewMemoryUserRepo(), Sessions: newMemorySessionStore()}
}

func validInput() RegistrationInput {
	return RegistrationInput{
		Username: "maria_s",
		Name:     "Maria Silva",
		Email:    "maria@test.dev",
		Password: "correct-horse",
		UserType: models.UserTypeClient,
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "maria_s", "User_42", "a1b2c3d4e5f6g7h8i9j0"}
	for _, u := range valid {
		if err := ValidateUsername(u); err != nil {
			t.Errorf("ValidateUsername(%q) = %v, want nil", u, err)
		}
	}

	invalid := []string{
		"",
		"ab",
		"this_username_is_way_too_long_12345",
		"bad name",
		"olá",
		"dash-ed",
	}
	for _, u := range invalid {
		if err := ValidateUsername(u); err == nil {
			t.Errorf("ValidateUsername(%q) = nil, want error", u)
		}
	}
}

func TestRegisterCreatesProfileAndToken(t *testing.T) {
	svc := newService()

	resp, err := svc.Register(validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.User.ID == "" {
		t.Error("expected generated user ID")
	}
	if resp.Token == "" {
		t.Error("expected issued token")
	}
	if resp.User.PasswordHash == "correct-horse" {
		t.Error("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if resp.User.Rating != 0 || resp.User.TotalRatings != 0 {
		t.Error("new profile should start with zeroed aggregates")
	}
}

func TestRegisterRecordsSession(t *testing.T) {
	sessions := newMemorySessionStore()
	svc := &DefaultUserService{Repo: userRepo.NewMemoryUserRepo(), Sessions: sessions}

	resp, err := svc.Register(validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	hash, ok := sessions.hashes[resp.User.ID]
	if !ok {
		t.Fatal("registration issued a token but recorded no session; the auth middleware would reject it")
	}
	if hash != utils.HashToken(resp.Token) {
		t.Errorf("stored session hash does not match the issued token")
	}
}

func TestSignInAndSignOutSession(t *testing.T) {
	sessions := newMemorySessionStore()
	svc := &DefaultUserService{Repo: userRepo.NewMemoryUserRepo(), Sessions: sessions}

	reg, err := svc.Register(validInput())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SignIn("maria@test.dev", "wrong-password"); err == nil {
		t.Error("wrong password accepted")
	}

	resp, err := svc.SignIn("maria@test.dev", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sessions.hashes[reg.User.ID] != utils.HashToken(resp.Token) {
		t.Error("sign-in did not record the new session hash")
	}

	if err := svc.SignOut(reg.User.ID); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, ok := sessions.hashes[reg.User.ID]; ok {
		t.Error("sign-out left the session in place")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newService()

	mutate := map[string]func(*RegistrationInput){
		"short username": func(in *RegistrationInput) { in.Username = "ab" },
		"blank name":     func(in *RegistrationInput) { in.Name = "  " },
		"bad email":      func(in *RegistrationInput) { in.Email = "not-an-email" },
		"short password": func(in *RegistrationInput) { in.Password = "short" },
		"bad role":       func(in *RegistrationInput) { in.UserType = "admin" },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			fn(&in)
			_, err := svc.Register(in)
			var verr *utils.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newService()
	if _, err := svc.Register(validInput()); err != nil {
		t.Fatal(err)
	}

	dupUsername := validInput()
	dupUsername.Email = "other@test.dev"
	if _, err := svc.Register(dupUsername); err == nil {
		t.Error("duplicate username accepted")
	}

	dupEmail := validInput()
	dupEmail.Username = "someone_else"
	if _, err := svc.Register(dupEmail); err == nil {
		t.Error("duplicate email accepted")
	}
}

func TestGetUserByUsername(t *testing.T) {
	svc := newService()
	resp, err := svc.Register(validInput())
	if err != nil {
		t.Fatal(err)
	}

	usr, err := svc.GetUserByUsername("maria_s")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if usr.ID != resp.User.ID {
		t.Errorf("got user %s, want %s", usr.ID, resp.User.ID)
	}

	_, err = svc.GetUserByUsername("nobody")
	var notFound *utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestCompleteProviderProfile(t *testing.T) {
	svc := newService()

	in := validInput()
	in.Username = "joao_p"
	in.Email = "joao@test.dev"
	in.UserType = models.UserTypeProvider
	resp, err := svc.Register(in)
	if err != nil {
		t.Fatal(err)
	}

	usr, err := svc.CompleteProviderProfile(resp.User.ID, ProviderProfileInput{
		Categories:  []string{"electrical", "plumbing"},
		Description: "Licensed electrician, 10 years on the job",
		Experience:  "10 years",
	})
	if err != nil {
		t.Fatalf("CompleteProviderProfile: %v", err)
	}
	if len(usr.Categories) != 2 || usr.Description == "" {
		t.Errorf("profile not applied: %+v", usr)
	}

	_, err = svc.CompleteProviderProfile(resp.User.ID, ProviderProfileInput{Description: "no categories"})
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("empty categories err = %v, want ValidationError", err)
	}
}

func TestCompleteProviderProfileRejectsClients(t *testing.T) {
	svc := newService()
	resp, err := svc.Register(validInput())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.CompleteProviderProfile(resp.User.ID, ProviderProfileInput{
		Categories:  []string{"plumbing"},
		Description: "d",
	})
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestListProvidersByCategory(t *testing.T) {
	svc := newService()

	in := validInput()
	in.Username = "joao_p"
	in.Email = "joao@test.dev"
	in.UserType = models.UserTypeProvider
	resp, err := svc.Register(in)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CompleteProviderProfile(resp.User.ID, ProviderProfileInput{
		Categories:  []string{"plumbing"},
		Description: "d",
	}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ListProvidersByCategory("plumbing")
	if err != nil {
		t.Fatalf("ListProvidersByCategory: %v", err)
	}
	if len(got) != 1 || got[0].ID != resp.User.ID {
		t.Errorf("got %d providers, want the one just registered", len(got))
	}

	_, err = svc.ListProvidersByCategory("")
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("empty category err = %v, want ValidationError", err)
	}
}
