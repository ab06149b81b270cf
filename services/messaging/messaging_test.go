package messaging

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	messageRepo "proconecta/database/repository/message"
	serviceRepo "proconecta/database/repository/service"
	"proconecta/models"
	"proconecta/utils"
)

func newService(t *testing.T) *DefaultMessagingService {
	t.Helper()

	services := serviceRepo.NewMemoryServiceRepo()
	now := time.Now()
	services.Put(models.ServiceRequest{
		ID:          "s1",
		Title:       "Fence repair",
		ServiceType: "carpentry",
		ClientID:    "c1",
		ProviderID:  "p1",
		Status:      models.StatusNegotiating,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	return &DefaultMessagingService{
		Messages: messageRepo.NewMemoryMessageRepo(),
		Services: services,
	}
}

func TestAppendAssignsSequence(t *testing.T) {
	svc := newService(t)

	first, err := svc.Append("c1", AppendInput{ServiceID: "s1", Content: "When can you start?"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	second, err := svc.Append("p1", AppendInput{ServiceID: "s1", Content: "Tomorrow morning."})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if first.Seq != 1 || second.Seq != 2 {
		t.Errorf("seqs = %d, %d, want 1, 2", first.Seq, second.Seq)
	}
	if first.Type != models.MessageText {
		t.Errorf("type = %q, want default %q", first.Type, models.MessageText)
	}
	if !second.CreatedAt.After(first.CreatedAt) {
		t.Errorf("timestamps not strictly increasing: %v then %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestAppendValidation(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name  string
		actor string
		input AppendInput
	}{
		{"outsider", "x9", AppendInput{ServiceID: "s1", Content: "hi"}},
		{"empty text", "c1", AppendInput{ServiceID: "s1", Content: "   "}},
		{"proposal without value", "p1", AppendInput{ServiceID: "s1", Type: models.MessageProposal}},
		{"unknown type", "c1", AppendInput{ServiceID: "s1", Content: "hi", Type: "sticker"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Append(tc.actor, tc.input)
			var verr *utils.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}

	_, err := svc.Append("c1", AppendInput{ServiceID: "ghost", Content: "hi"})
	var notFound *utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("unknown service err = %v, want NotFoundError", err)
	}
}

func TestAppendProposalMessage(t *testing.T) {
	svc := newService(t)

	msg, err := svc.Append("p1", AppendInput{
		ServiceID:     "s1",
		Content:       "How about 120?",
		Type:          models.MessageProposal,
		ProposedValue: 120,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if msg.Type != models.MessageProposal || msg.ProposedValue != 120 {
		t.Errorf("message = %+v, want proposal with value 120", msg)
	}
}

func TestConcurrentAppendsStayOrdered(t *testing.T) {
	svc := newService(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.Append("c1", AppendInput{
				ServiceID: "s1",
				Content:   fmt.Sprintf("message %d", i),
			}); err != nil {
				t.Errorf("Append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	msgs, err := svc.List("c1", "s1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(msgs) != n {
		t.Fatalf("messages = %d, want %d", len(msgs), n)
	}
	for i, m := range msgs {
		if m.Seq != int64(i+1) {
			t.Fatalf("seq at %d = %d, want %d", i, m.Seq, i+1)
		}
		if i > 0 && !m.CreatedAt.After(msgs[i-1].CreatedAt) {
			t.Fatalf("timestamp at %d not strictly after its predecessor", i)
		}
	}
}

func TestListRequiresParticipant(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Append("c1", AppendInput{ServiceID: "s1", Content: "hello"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.List("x9", "s1")
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
