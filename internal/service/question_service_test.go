package service

import (
	"context"
	"errors"
	"testing"

	"lawconnect/internal/entity"

	"github.com/google/uuid"
)

type questionFixture struct {
	store *memoryStore
	svc   *QuestionService
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	store := newMemoryStore()
	return &questionFixture{store: store, svc: NewQuestionService(store, nil)}
}

func (f *questionFixture) addCustomer(t *testing.T, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username: username,
		Email:    username + "@example.com",
		Kind:     entity.AccountKindCustomer,
		IsActive: true,
	}
	if err := f.store.Users().Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user
}

func (f *questionFixture) addLawyer(t *testing.T, username string, approved bool) (*entity.User, *entity.LawyerProfile) {
	t.Helper()
	user := &entity.User{
		Username: username,
		Email:    username + "@example.com",
		Kind:     entity.AccountKindLawyer,
		IsActive: true,
	}
	if err := f.store.Users().Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	profile := &entity.LawyerProfile{
		UserID:    user.ID,
		Specialty: "General",
		Approved:  approved,
	}
	if err := f.store.LawyerProfiles().Create(context.Background(), profile); err != nil {
		t.Fatal(err)
	}
	return user, profile
}

func (f *questionFixture) addQuestion(t *testing.T, asker *entity.User, title string) *entity.Question {
	t.Helper()
	question, err := f.svc.Ask(context.Background(), asker.ID, AskInput{Title: title, Body: "details"})
	if err != nil {
		t.Fatalf("Ask(%q): %v", title, err)
	}
	return question
}

func TestAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots asker identity", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		asker := fixture.addCustomer(t, "alice")

		question, err := fixture.svc.Ask(ctx, asker.ID, AskInput{Title: "  Tenancy deposit  ", Body: " My landlord kept it. "})
		if err != nil {
			t.Fatalf("Ask: %v", err)
		}
		if question.Title != "Tenancy deposit" || question.Body != "My landlord kept it." {
			t.Errorf("fields not trimmed: %q / %q", question.Title, question.Body)
		}
		if question.AskerName != "alice" || question.AskerEmail != "alice@example.com" {
			t.Errorf("asker snapshot wrong: %q / %q", question.AskerName, question.AskerEmail)
		}
		if question.IsAnswered {
			t.Error("new question must start unanswered")
		}
	})

	t.Run("lawyers cannot ask", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		lawyer, _ := fixture.addLawyer(t, "bob", true)

		if _, err := fixture.svc.Ask(ctx, lawyer.ID, AskInput{Title: "t", Body: "b"}); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("err = %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("blank title rejected", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		asker := fixture.addCustomer(t, "alice")

		if _, err := fixture.svc.Ask(ctx, asker.ID, AskInput{Title: "   ", Body: "b"}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
		if len(fixture.store.questions) != 0 {
			t.Fatal("rejected question was persisted")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		if _, err := fixture.svc.Ask(ctx, uuid.New(), AskInput{Title: "t", Body: "b"}); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("err = %v, want ErrUserNotFound", err)
		}
	})
}

func TestAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("empty answer leaves question untouched", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		asker := fixture.addCustomer(t, "alice")
		lawyer, _ := fixture.addLawyer(t, "bob", true)
		question := fixture.addQuestion(t, asker, "Deposit")

		for _, answer := range []string{"", "   ", "\n\t"} {
			if err := fixture.svc.Answer(ctx, question.ID, lawyer.ID, answer); !errors.Is(err, ErrEmptyAnswer) {
				t.Fatalf("Answer(%q) = %v, want ErrEmptyAnswer", answer, err)
			}
		}
		stored, _ := fixture.store.Questions().FindByID(ctx, question.ID)
		if stored.IsAnswered || stored.AnswerText != "" || stored.AnsweredByID != nil {
			t.Errorf("empty answer mutated the question: %+v", stored)
		}
	})

	t.Run("customers cannot answer", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		asker := fixture.addCustomer(t, "alice")
		question := fixture.addQuestion(t, asker, "Deposit")

		if err := fixture.svc.Answer(ctx, question.ID, asker.ID, "pay up"); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("err = %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		lawyer, _ := fixture.addLawyer(t, "bob", true)

		if err := fixture.svc.Answer(ctx, uuid.New(), lawyer.ID, "an answer"); !errors.Is(err, ErrQuestionNotFound) {
			t.Fatalf("err = %v, want ErrQuestionNotFound", err)
		}
	})

	// Approval gates the public directory, not answering.
	t.Run("unapproved lawyer can answer", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		asker := fixture.addCustomer(t, "alice")
		lawyer, profile := fixture.addLawyer(t, "bob", false)
		question := fixture.addQuestion(t, asker, "Deposit")

		if err := fixture.svc.Answer(ctx, question.ID, lawyer.ID, "  You can reclaim it.  "); err != nil {
			t.Fatalf("Answer: %v", err)
		}
		stored, _ := fixture.store.Questions().FindByID(ctx, question.ID)
		if !stored.IsAnswered {
			t.Error("question not marked answered")
		}
		if stored.AnswerText != "You can reclaim it." {
			t.Errorf("answer text = %q", stored.AnswerText)
		}
		if stored.AnsweredByID == nil || *stored.AnsweredByID != profile.ID {
			t.Errorf("answered-by = %v, want %v", stored.AnsweredByID, profile.ID)
		}
	})

	t.Run("re-answer overwrites", func(t *testing.T) {
		fixture := newQuestionFixture(t)
		asker := fixture.addCustomer(t, "alice")
		first, firstProfile := fixture.addLawyer(t, "bob", true)
		second, secondProfile := fixture.addLawyer(t, "carol", true)
		question := fixture.addQuestion(t, asker, "Deposit")

		if err := fixture.svc.Answer(ctx, question.ID, first.ID, "first take"); err != nil {
			t.Fatalf("first answer: %v", err)
		}
		if err := fixture.svc.Answer(ctx, question.ID, second.ID, "corrected take"); err != nil {
			t.Fatalf("second answer: %v", err)
		}

		stored, _ := fixture.store.Questions().FindByID(ctx, question.ID)
		if stored.AnswerText != "corrected take" {
			t.Errorf("answer text = %q, want the correction", stored.AnswerText)
		}
		if *stored.AnsweredByID != secondProfile.ID {
			t.Errorf("answered-by = %v, want %v (not %v)", stored.AnsweredByID, secondProfile.ID, firstProfile.ID)
		}
	})
}

func TestListPublic(t *testing.T) {
	ctx := context.Background()
	fixture := newQuestionFixture(t)
	asker := fixture.addCustomer(t, "alice")
	lawyer, _ := fixture.addLawyer(t, "bob", true)

	answered := fixture.addQuestion(t, asker, "Answered one")
	fixture.addQuestion(t, asker, "Pending one")
	if err := fixture.svc.Answer(ctx, answered.ID, lawyer.ID, "done"); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	public, err := fixture.svc.ListPublic(ctx, false)
	if err != nil {
		t.Fatalf("ListPublic(visitor): %v", err)
	}
	if len(public) != 1 || public[0].Title != "Answered one" {
		t.Errorf("visitor view = %+v, want only the answered question", public)
	}

	all, err := fixture.svc.ListPublic(ctx, true)
	if err != nil {
		t.Fatalf("ListPublic(lawyer): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("lawyer view = %d questions, want 2", len(all))
	}
}

func TestLatestAnswered(t *testing.T) {
	ctx := context.Background()
	fixture := newQuestionFixture(t)
	asker := fixture.addCustomer(t, "alice")
	lawyer, _ := fixture.addLawyer(t, "bob", true)

	for _, title := range []string{"one", "two", "three"} {
		question := fixture.addQuestion(t, asker, title)
		if err := fixture.svc.Answer(ctx, question.ID, lawyer.ID, "answer to "+title); err != nil {
			t.Fatalf("Answer(%q): %v", title, err)
		}
	}

	latest, err := fixture.svc.LatestAnswered(ctx, 2)
	if err != nil {
		t.Fatalf("LatestAnswered: %v", err)
	}
	if len(latest) != 2 {
		t.Errorf("got %d questions, want limit of 2", len(latest))
	}
}
