package voting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviepulse/awards-voting-api/internal/store"
	"github.com/moviepulse/awards-voting-api/internal/testutil"
	"github.com/moviepulse/awards-voting-api/internal/voting"
)

func newService(t *testing.T) (*voting.Service, *store.Store) {
	t.Helper()
	st := testutil.NewStore(t)
	return voting.New(st, 24*time.Hour, zerolog.Nop()), st
}

func nomineeVotes(t *testing.T, st *store.Store, id string) int64 {
	t.Helper()
	nom, err := st.GetNominee(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to fetch nominee %s: %v", id, err)
	}
	return nom.Votes
}

func categoryTotal(t *testing.T, st *store.Store, id string) int64 {
	t.Helper()
	cat, err := st.GetCategory(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to fetch category %s: %v", id, err)
	}
	return cat.TotalVotes
}

func TestFirstVoteIncrementsCounters(t *testing.T) {
	svc, st := newService(t)
	cat, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	a := testutil.SeedNominee(t, st, cat.ID, "Actor A", "Movie A")

	receipt, err := svc.Submit(context.Background(), "user-x", voting.Submission{
		CategoryID: cat.ID,
		NomineeID:  a.ID,
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !receipt.FirstVote {
		t.Error("Expected first_vote receipt")
	}
	if receipt.PreviousNomineeID != "" {
		t.Errorf("Expected no previous nominee, got %q", receipt.PreviousNomineeID)
	}
	if got := nomineeVotes(t, st, a.ID); got != 1 {
		t.Errorf("Expected nominee votes 1, got %d", got)
	}
	if got := categoryTotal(t, st, cat.ID); got != 1 {
		t.Errorf("Expected category total 1, got %d", got)
	}

	vote, err := svc.UserVote(context.Background(), "user-x", cat.ID)
	if err != nil {
		t.Fatalf("UserVote failed: %v", err)
	}
	if vote.NomineeID != a.ID {
		t.Errorf("Expected recorded choice %s, got %s", a.ID, vote.NomineeID)
	}
}

func TestDuplicateVoteRejected(t *testing.T) {
	svc, st := newService(t)
	cat, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	a := testutil.SeedNominee(t, st, cat.ID, "Actor A", "")

	sub := voting.Submission{CategoryID: cat.ID, NomineeID: a.ID}
	if _, err := svc.Submit(context.Background(), "user-x", sub); err != nil {
		t.Fatalf("First submit failed: %v", err)
	}
	_, err := svc.Submit(context.Background(), "user-x", sub)
	if !errors.Is(err, store.ErrAlreadyVoted) {
		t.Fatalf("Expected ErrAlreadyVoted, got %v", err)
	}
	if got := nomineeVotes(t, st, a.ID); got != 1 {
		t.Errorf("Duplicate must not change counter, got %d", got)
	}
	if got := categoryTotal(t, st, cat.ID); got != 1 {
		t.Errorf("Duplicate must not change total, got %d", got)
	}
}

func TestCooldownBlocksChange(t *testing.T) {
	svc, st := newService(t)
	cat, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	a := testutil.SeedNominee(t, st, cat.ID, "Actor A", "")
	b := testutil.SeedNominee(t, st, cat.ID, "Actor B", "")

	if _, err := svc.Submit(context.Background(), "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: a.ID}); err != nil {
		t.Fatalf("First submit failed: %v", err)
	}

	svc.Now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err := svc.Submit(context.Background(), "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: b.ID})
	if !errors.Is(err, store.ErrCooldownActive) {
		t.Fatalf("Expected ErrCooldownActive, got %v", err)
	}

	if got := nomineeVotes(t, st, a.ID); got != 1 {
		t.Errorf("Rejected change must leave old counter at 1, got %d", got)
	}
	if got := nomineeVotes(t, st, b.ID); got != 0 {
		t.Errorf("Rejected change must leave new counter at 0, got %d", got)
	}
	vote, err := svc.UserVote(context.Background(), "user-x", cat.ID)
	if err != nil {
		t.Fatalf("UserVote failed: %v", err)
	}
	if vote.NomineeID != a.ID {
		t.Errorf("Vote record must be unchanged, got %s", vote.NomineeID)
	}
}

func TestChangeAfterCooldownMovesOneVote(t *testing.T) {
	svc, st := newService(t)
	cat, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	a := testutil.SeedNominee(t, st, cat.ID, "Actor A", "")
	b := testutil.SeedNominee(t, st, cat.ID, "Actor B", "")

	if _, err := svc.Submit(context.Background(), "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: a.ID}); err != nil {
		t.Fatalf("First submit failed: %v", err)
	}

	svc.Now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	receipt, err := svc.Submit(context.Background(), "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: b.ID})
	if err != nil {
		t.Fatalf("Change after cooldown failed: %v", err)
	}
	if receipt.FirstVote {
		t.Error("Change must not be flagged as first vote")
	}
	if receipt.PreviousNomineeID != a.ID {
		t.Errorf("Expected previous nominee %s, got %s", a.ID, receipt.PreviousNomineeID)
	}
	if got := nomineeVotes(t, st, a.ID); got != 0 {
		t.Errorf("Expected old nominee at 0, got %d", got)
	}
	if got := nomineeVotes(t, st, b.ID); got != 1 {
		t.Errorf("Expected new nominee at 1, got %d", got)
	}
	if got := categoryTotal(t, st, cat.ID); got != 1 {
		t.Errorf("Change must leave category total at 1, got %d", got)
	}
}

// The award-night walkthrough: two voters, a blocked switch, then the switch
// landing after the cooldown.
func TestBestActorScenario(t *testing.T) {
	svc, st := newService(t)
	cat, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	a := testutil.SeedNominee(t, st, cat.ID, "Actor A", "")
	b := testutil.SeedNominee(t, st, cat.ID, "Actor B", "")
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: a.ID}); err != nil {
		t.Fatalf("X voting A failed: %v", err)
	}
	if got := nomineeVotes(t, st, a.ID); got != 1 {
		t.Fatalf("A should be at 1, got %d", got)
	}
	if got := categoryTotal(t, st, cat.ID); got != 1 {
		t.Fatalf("total should be 1, got %d", got)
	}

	if _, err := svc.Submit(ctx, "user-y", voting.Submission{CategoryID: cat.ID, NomineeID: b.ID}); err != nil {
		t.Fatalf("Y voting B failed: %v", err)
	}
	if got := nomineeVotes(t, st, b.ID); got != 1 {
		t.Fatalf("B should be at 1, got %d", got)
	}
	if got := categoryTotal(t, st, cat.ID); got != 2 {
		t.Fatalf("total should be 2, got %d", got)
	}

	if _, err := svc.Submit(ctx, "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: b.ID}); !errors.Is(err, store.ErrCooldownActive) {
		t.Fatalf("X switching inside cooldown should fail, got %v", err)
	}

	svc.Now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if _, err := svc.Submit(ctx, "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: b.ID}); err != nil {
		t.Fatalf("X switching after cooldown failed: %v", err)
	}
	if got := nomineeVotes(t, st, a.ID); got != 0 {
		t.Errorf("A should end at 0, got %d", got)
	}
	if got := nomineeVotes(t, st, b.ID); got != 2 {
		t.Errorf("B should end at 2, got %d", got)
	}
	if got := categoryTotal(t, st, cat.ID); got != 2 {
		t.Errorf("total should end at 2, got %d", got)
	}
}

func TestWriteInVote(t *testing.T) {
	svc, st := newService(t)
	cat, other := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	a := testutil.SeedNominee(t, st, cat.ID, "Actor A", "")
	user := testutil.SeedUser(t, st, "zoya", "user")
	ctx := context.Background()

	_, err := svc.Submit(ctx, user.ID, voting.Submission{CategoryID: cat.ID, NomineeID: other.ID, OtherText: "   "})
	if !errors.Is(err, voting.ErrWriteInRequired) {
		t.Fatalf("Blank write-in should be rejected, got %v", err)
	}

	receipt, err := svc.Submit(ctx, user.ID, voting.Submission{CategoryID: cat.ID, NomineeID: other.ID, OtherText: "  Someone Else  "})
	if err != nil {
		t.Fatalf("Write-in submit failed: %v", err)
	}
	if !receipt.FirstVote {
		t.Error("Write-in first vote should be flagged as such")
	}
	if got := categoryTotal(t, st, cat.ID); got != 1 {
		t.Errorf("Write-in must bump the category total, got %d", got)
	}
	if got := nomineeVotes(t, st, a.ID); got != 0 {
		t.Errorf("Write-in must not touch nominee counters, got %d", got)
	}
	if got := nomineeVotes(t, st, other.ID); got != 0 {
		t.Errorf("The Other placeholder carries no numeric tally, got %d", got)
	}

	recs, err := svc.WriteIns(ctx, cat.ID, other.ID)
	if err != nil {
		t.Fatalf("WriteIns failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Expected 1 write-in record, got %d", len(recs))
	}
	if recs[0].Text != "Someone Else" {
		t.Errorf("Expected trimmed text %q, got %q", "Someone Else", recs[0].Text)
	}
	if recs[0].DisplayName != "zoya" {
		t.Errorf("Expected display name from profile, got %q", recs[0].DisplayName)
	}
}

func TestWriteInViewerFallsBackToTruncatedID(t *testing.T) {
	svc, st := newService(t)
	cat, other := testutil.SeedCategory(t, st, "Pan India", "Best Actor")

	userID := "ghost-user-without-profile"
	if _, err := svc.Submit(context.Background(), userID, voting.Submission{
		CategoryID: cat.ID, NomineeID: other.ID, OtherText: "Someone",
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	recs, err := svc.WriteIns(context.Background(), cat.ID, other.ID)
	if err != nil {
		t.Fatalf("WriteIns failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(recs))
	}
	if recs[0].DisplayName != userID[:8] {
		t.Errorf("Expected truncated id %q, got %q", userID[:8], recs[0].DisplayName)
	}
}

func TestChangeFromWriteInToNominee(t *testing.T) {
	svc, st := newService(t)
	cat, other := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	a := testutil.SeedNominee(t, st, cat.ID, "Actor A", "")
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "user-z", voting.Submission{CategoryID: cat.ID, NomineeID: other.ID, OtherText: "Someone"}); err != nil {
		t.Fatalf("Write-in submit failed: %v", err)
	}

	svc.Now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if _, err := svc.Submit(ctx, "user-z", voting.Submission{CategoryID: cat.ID, NomineeID: a.ID}); err != nil {
		t.Fatalf("Change from Other failed: %v", err)
	}
	if got := nomineeVotes(t, st, a.ID); got != 1 {
		t.Errorf("Expected nominee at 1 after change from Other, got %d", got)
	}
	if got := categoryTotal(t, st, cat.ID); got != 1 {
		t.Errorf("Change must not bump the total again, got %d", got)
	}
}

func TestVotingWindowEnforced(t *testing.T) {
	svc, st := newService(t)
	cat, other := testutil.SeedClosedCategory(t, st, "Pan India", "Best Actor")

	_, err := svc.Submit(context.Background(), "user-x", voting.Submission{
		CategoryID: cat.ID, NomineeID: other.ID, OtherText: "Someone",
	})
	if !errors.Is(err, voting.ErrVotingClosed) {
		t.Fatalf("Expected ErrVotingClosed, got %v", err)
	}
}

func TestUnauthenticatedSubmission(t *testing.T) {
	svc, st := newService(t)
	cat, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	a := testutil.SeedNominee(t, st, cat.ID, "Actor A", "")

	_, err := svc.Submit(context.Background(), "", voting.Submission{CategoryID: cat.ID, NomineeID: a.ID})
	if !errors.Is(err, voting.ErrUnauthenticated) {
		t.Fatalf("Expected ErrUnauthenticated, got %v", err)
	}
}

func TestUnknownNomineeAndWrongCategory(t *testing.T) {
	svc, st := newService(t)
	cat, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actor")
	other, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actress")
	stranger := testutil.SeedNominee(t, st, other.ID, "Actress C", "")
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: "missing"}); !errors.Is(err, store.ErrNomineeNotFound) {
		t.Errorf("Expected ErrNomineeNotFound for unknown nominee, got %v", err)
	}
	if _, err := svc.Submit(ctx, "user-x", voting.Submission{CategoryID: cat.ID, NomineeID: stranger.ID}); !errors.Is(err, store.ErrNomineeNotFound) {
		t.Errorf("Expected ErrNomineeNotFound for cross-category nominee, got %v", err)
	}
}

func TestUserVoteLookupWithoutVote(t *testing.T) {
	svc, st := newService(t)
	cat, _ := testutil.SeedCategory(t, st, "Pan India", "Best Actor")

	_, err := svc.UserVote(context.Background(), "user-x", cat.ID)
	if !errors.Is(err, store.ErrVoteNotFound) {
		t.Fatalf("Expected ErrVoteNotFound, got %v", err)
	}
}

