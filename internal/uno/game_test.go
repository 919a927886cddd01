// internal/uno/game_test.go
package uno

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redtable/uno/internal/deck"
	"github.com/redtable/uno/internal/models"
	"github.com/redtable/uno/internal/uno/unotest"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// setupGame seeds the backend with rec and returns a Game bound to seat.
func setupGame(t *testing.T, rec *models.Record, seat string) (*Game, *unotest.Backend) {
	t.Helper()
	backend := unotest.NewBackend()
	if rec != nil {
		backend.Seed("g1", rec)
	}
	g, err := New(backend, testLogger(), "g1", seat, len(rec.PlayerOrder))
	require.NoError(t, err)
	return g, backend
}

// threePlayerRecord builds a mid-game state with A to move on a Red 3.
func threePlayerRecord() *models.Record {
	return &models.Record{
		DrawPile:    []string{"Blue 1", "Blue 2", "Blue 3", "Blue 4", "Blue 5", "Blue 6"},
		DiscardPile: []string{"Yellow 9", "Red 3"},
		Hands: map[string][]string{
			"A": {"Red 5", "Red Skip", "Red Reverse", "Red Draw Two", "Wild", "Wild Draw Four"},
			"B": {"Green 1", "Green 2"},
			"C": {"Yellow 1", "Yellow 2"},
		},
		CurrentTurn:  "A",
		CurrentColor: "Red",
		LastAction:   "Game started",
		PlayerOrder:  []string{"A", "B", "C"},
		Direction:    1,
	}
}

func twoPlayerRecord() *models.Record {
	rec := threePlayerRecord()
	delete(rec.Hands, "C")
	rec.PlayerOrder = []string{"A", "B"}
	return rec
}

func readRecord(t *testing.T, backend *unotest.Backend) *models.Record {
	t.Helper()
	rec, err := backend.Read(context.Background(), "g1")
	require.NoError(t, err)
	return rec
}

func TestNewValidatesSeating(t *testing.T) {
	backend := unotest.NewBackend()

	_, err := New(backend, testLogger(), "g1", "A", 1)
	assert.Error(t, err)
	_, err = New(backend, testLogger(), "g1", "A", 5)
	assert.Error(t, err)
	_, err = New(backend, testLogger(), "g1", "C", 2)
	assert.Error(t, err, "seat C does not exist in a two player game")

	_, err = New(backend, testLogger(), "g1", "D", 4)
	assert.NoError(t, err)
}

func TestEnsureDealsNewGame(t *testing.T) {
	backend := unotest.NewBackend()
	g, err := New(backend, testLogger(), "g1", "A", 3)
	require.NoError(t, err)

	require.NoError(t, g.Ensure(context.Background()))

	rec := readRecord(t, backend)
	assert.Equal(t, []string{"A", "B", "C"}, rec.PlayerOrder)
	assert.Equal(t, deck.Size, rec.CardCount())
	for _, seat := range rec.PlayerOrder {
		assert.GreaterOrEqual(t, len(rec.Hands[seat]), 7, "seat %s", seat)
	}
	assert.False(t, deck.IsWild(rec.Top()), "opener must not be a wild")
	assert.True(t, deck.ValidColor(rec.CurrentColor))
	assert.Contains(t, []int{1, -1}, rec.Direction)
	assert.NotEqual(t, "", rec.CurrentTurn)
}

func TestEnsureIsIdempotent(t *testing.T) {
	backend := unotest.NewBackend()
	g, err := New(backend, testLogger(), "g1", "A", 2)
	require.NoError(t, err)

	require.NoError(t, g.Ensure(context.Background()))
	first := backend.Raw("g1")

	require.NoError(t, g.Ensure(context.Background()))
	assert.Equal(t, string(first), string(backend.Raw("g1")), "second Ensure must not redeal")
}

func TestEnsureAnySeatCanCreate(t *testing.T) {
	backend := unotest.NewBackend()
	g, err := New(backend, testLogger(), "g1", "B", 3)
	require.NoError(t, err)

	require.NoError(t, g.Ensure(context.Background()))

	rec := readRecord(t, backend)
	assert.Len(t, rec.PlayerOrder, 3)
	assert.Equal(t, deck.Size, rec.CardCount())
}

func TestPlayRejections(t *testing.T) {
	t.Run("wrong turn", func(t *testing.T) {
		g, _ := setupGame(t, threePlayerRecord(), "B")
		_, err := g.Play(context.Background(), "Green 1", "")
		assert.ErrorIs(t, err, ErrWrongTurn)
	})

	t.Run("game over", func(t *testing.T) {
		rec := threePlayerRecord()
		rec.Winner = "C"
		g, _ := setupGame(t, rec, "A")
		_, err := g.Play(context.Background(), "Red 5", "")
		assert.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("card not in hand", func(t *testing.T) {
		g, _ := setupGame(t, threePlayerRecord(), "A")
		_, err := g.Play(context.Background(), "Blue 9", "")
		assert.ErrorIs(t, err, ErrNotInHand)
	})

	t.Run("illegal card", func(t *testing.T) {
		rec := threePlayerRecord()
		rec.Hands["A"] = append(rec.Hands["A"], "Green 7")
		g, backend := setupGame(t, rec, "A")
		_, err := g.Play(context.Background(), "Green 7", "")
		assert.ErrorIs(t, err, ErrIllegalPlay)

		after := readRecord(t, backend)
		assert.Equal(t, "A", after.CurrentTurn, "rejected play must not mutate state")
		assert.Contains(t, after.Hands["A"], "Green 7")
	})

	t.Run("wild without color", func(t *testing.T) {
		g, _ := setupGame(t, threePlayerRecord(), "A")
		_, err := g.Play(context.Background(), "Wild", "")
		assert.ErrorIs(t, err, ErrMissingColor)
	})

	t.Run("wild with bad color", func(t *testing.T) {
		g, _ := setupGame(t, threePlayerRecord(), "A")
		_, err := g.Play(context.Background(), "Wild", "Purple")
		assert.ErrorIs(t, err, ErrInvalidColor)
	})
}

func TestPlayNumberCard(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "A")
	before := readRecord(t, backend).CardCount()

	msg, err := g.Play(context.Background(), "Red 5", "")
	require.NoError(t, err)
	assert.Equal(t, "You played Red 5.", msg)

	rec := readRecord(t, backend)
	assert.Equal(t, "B", rec.CurrentTurn)
	assert.Equal(t, "Red 5", rec.Top())
	assert.Equal(t, "Red", rec.CurrentColor)
	assert.Equal(t, "Player A played Red 5", rec.LastAction)
	assert.NotContains(t, rec.Hands["A"], "Red 5")
	assert.Equal(t, before, rec.CardCount())

	assert.Equal(t, 1, backend.Publishes, "each mutation publishes once")
	require.Len(t, backend.Actions, 1)
	assert.Equal(t, "play", backend.Actions[0].Action)
	assert.Equal(t, "Red 5", backend.Actions[0].Card)
}

func TestPlaySkipThreePlayers(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "A")

	msg, err := g.Play(context.Background(), "Red Skip", "")
	require.NoError(t, err)
	assert.Equal(t, "You played Red Skip. B is skipped.", msg)

	rec := readRecord(t, backend)
	assert.Equal(t, "C", rec.CurrentTurn, "skip jumps over the next seat")
}

func TestPlayReverseThreePlayers(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "A")

	msg, err := g.Play(context.Background(), "Red Reverse", "")
	require.NoError(t, err)
	assert.Equal(t, "You played Red Reverse. Direction is now Counter-clockwise.", msg)

	rec := readRecord(t, backend)
	assert.Equal(t, -1, rec.Direction)
	assert.Equal(t, "C", rec.CurrentTurn, "next seat counter-clockwise from A is C")
}

func TestPlayReverseTwoPlayersActsAsSkip(t *testing.T) {
	g, backend := setupGame(t, twoPlayerRecord(), "A")

	msg, err := g.Play(context.Background(), "Red Reverse", "")
	require.NoError(t, err)
	assert.Equal(t, "You played Red Reverse. B is skipped.", msg)

	rec := readRecord(t, backend)
	assert.Equal(t, 1, rec.Direction, "two player reverse leaves direction alone")
	assert.Equal(t, "A", rec.CurrentTurn, "the actor plays again")
}

func TestPlayDrawTwo(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "A")
	before := readRecord(t, backend)

	msg, err := g.Play(context.Background(), "Red Draw Two", "")
	require.NoError(t, err)
	assert.Equal(t, "You played Red Draw Two. B draws 2 and is skipped.", msg)

	rec := readRecord(t, backend)
	assert.Len(t, rec.Hands["B"], len(before.Hands["B"])+2)
	assert.Equal(t, "C", rec.CurrentTurn, "the penalized seat loses its turn")
	assert.Equal(t, before.CardCount(), rec.CardCount())
}

func TestPlayWild(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "A")

	msg, err := g.Play(context.Background(), "Wild", "Blue")
	require.NoError(t, err)
	assert.Equal(t, "You played Wild. Color is now Blue.", msg)

	rec := readRecord(t, backend)
	assert.Equal(t, "Blue", rec.CurrentColor)
	assert.Equal(t, "B", rec.CurrentTurn)
	assert.Equal(t, "Player A played Wild (chose Blue)", rec.LastAction)
}

func TestPlayWildDrawFour(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "A")
	before := readRecord(t, backend)

	msg, err := g.Play(context.Background(), "Wild Draw Four", "Green")
	require.NoError(t, err)
	assert.Equal(t, "You played Wild Draw Four. Color is now Green. B draws 4 and is skipped.", msg)

	rec := readRecord(t, backend)
	assert.Equal(t, "Green", rec.CurrentColor)
	assert.Len(t, rec.Hands["B"], len(before.Hands["B"])+4)
	assert.Equal(t, "C", rec.CurrentTurn)
	assert.Equal(t, before.CardCount(), rec.CardCount())
}

func TestPlayWinOnLastCard(t *testing.T) {
	rec := threePlayerRecord()
	rec.Hands["A"] = []string{"Red 5"}
	g, backend := setupGame(t, rec, "A")

	msg, err := g.Play(context.Background(), "Red 5", "")
	require.NoError(t, err)
	assert.Equal(t, "You played Red 5. You win!", msg)

	after := readRecord(t, backend)
	assert.Equal(t, "A", after.Winner)
	assert.True(t, after.Over())
	assert.Equal(t, "Player A played Red 5 and won!", after.LastAction)

	gB, err := New(backend, testLogger(), "g1", "B", 3)
	require.NoError(t, err)
	_, err = gB.Play(context.Background(), "Green 1", "")
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = gB.Draw(context.Background())
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestPlayWinWithActionCard(t *testing.T) {
	// The win check runs after effect resolution, so an action card as the
	// final card both applies its effect and ends the game.
	rec := threePlayerRecord()
	rec.Hands["A"] = []string{"Red Draw Two"}
	g, backend := setupGame(t, rec, "A")

	msg, err := g.Play(context.Background(), "Red Draw Two", "")
	require.NoError(t, err)
	assert.Equal(t, "You played Red Draw Two. You win!", msg)

	after := readRecord(t, backend)
	assert.Equal(t, "A", after.Winner)
	assert.Len(t, after.Hands["B"], 4, "penalty still applies on a winning card")
}

func TestDraw(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "A")
	before := readRecord(t, backend)

	msg, err := g.Draw(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "You drew: "), "got %q", msg)

	rec := readRecord(t, backend)
	assert.Len(t, rec.Hands["A"], len(before.Hands["A"])+1)
	assert.Len(t, rec.DrawPile, len(before.DrawPile)-1)
	assert.Equal(t, "B", rec.CurrentTurn, "drawing ends the turn")
	assert.Equal(t, "Player A drew a card", rec.LastAction)
	assert.Equal(t, before.CardCount(), rec.CardCount())
}

func TestDrawReshufflesDiscards(t *testing.T) {
	rec := threePlayerRecord()
	rec.DrawPile = nil
	rec.DiscardPile = []string{"Yellow 9", "Green 4", "Blue 7", "Red 3"}
	g, backend := setupGame(t, rec, "A")
	before := readRecord(t, backend).CardCount()

	_, err := g.Draw(context.Background())
	require.NoError(t, err)

	after := readRecord(t, backend)
	assert.Equal(t, []string{"Red 3"}, after.DiscardPile, "top discard stays in place")
	assert.Len(t, after.DrawPile, 2, "three buried discards minus one drawn")
	assert.Equal(t, before, after.CardCount())
}

func TestDrawExhausted(t *testing.T) {
	rec := threePlayerRecord()
	rec.DrawPile = nil
	rec.DiscardPile = []string{"Red 3"}
	g, backend := setupGame(t, rec, "A")

	_, err := g.Draw(context.Background())
	assert.ErrorIs(t, err, ErrDeckExhausted)

	after := readRecord(t, backend)
	assert.Equal(t, "A", after.CurrentTurn, "a failed draw does not pass the turn")
}

func TestLegacyRecordDefaults(t *testing.T) {
	// Records written before seating metadata existed carry neither
	// player_order nor direction. Reads fill the two-player defaults without
	// rewriting the stored value.
	backend := unotest.NewBackend()
	backend.SeedRaw("g1", []byte(`{
		"draw_pile": ["Blue 1", "Blue 2"],
		"discard_pile": ["Red 3"],
		"hands": {"A": ["Red 5"], "B": ["Green 1"]},
		"current_turn": "A",
		"current_color": "Red",
		"last_action": "Game started"
	}`))

	g, err := New(backend, testLogger(), "g1", "A", 2)
	require.NoError(t, err)

	rec, err := g.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, rec.PlayerOrder)
	assert.Equal(t, 1, rec.Direction)
	assert.NotContains(t, string(backend.Raw("g1")), "player_order",
		"read-side defaults must not leak into the store")

	// A mutation through the engine persists the filled record.
	_, err = g.Play(context.Background(), "Red 5", "")
	require.NoError(t, err)
	assert.Contains(t, string(backend.Raw("g1")), "player_order")
}

func TestConcurrentPlaysSerialize(t *testing.T) {
	// Two seats race a mutation. A plays a Reverse, which in a two player
	// game keeps the turn with A, so B's attempt must lose whichever order
	// the lock grants.
	g, backend := setupGame(t, twoPlayerRecord(), "A")
	gB, err := New(backend, testLogger(), "g1", "B", 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var errA, errB error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = g.Play(context.Background(), "Red Reverse", "")
	}()
	go func() {
		defer wg.Done()
		_, errB = gB.Play(context.Background(), "Green 1", "")
	}()
	wg.Wait()

	assert.NoError(t, errA)
	assert.ErrorIs(t, errB, ErrWrongTurn)

	rec := readRecord(t, backend)
	assert.Equal(t, "A", rec.CurrentTurn)
	assert.Contains(t, rec.Hands["B"], "Green 1", "the losing play must not mutate the hand")
}

func TestWaitReturnsImmediatelyOnOwnTurn(t *testing.T) {
	g, _ := setupGame(t, threePlayerRecord(), "A")

	msg, err := g.Wait(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "Game started", msg)
}

func TestWaitReturnsImmediatelyWhenOver(t *testing.T) {
	rec := threePlayerRecord()
	rec.Winner = "C"
	rec.LastAction = "Player C played Red 9 and won!"
	g, _ := setupGame(t, rec, "B")

	msg, err := g.Wait(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "Player C played Red 9 and won!", msg)
}

func TestWaitWakesOnPublish(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "B")

	done := make(chan struct{})
	var msg string
	var waitErr error
	go func() {
		defer close(done)
		msg, waitErr = g.Wait(context.Background(), 5*time.Second)
	}()

	// Give the waiter time to subscribe, then move the turn to B.
	time.Sleep(50 * time.Millisecond)
	gA, err := New(backend, testLogger(), "g1", "A", 3)
	require.NoError(t, err)
	_, err = gA.Play(context.Background(), "Red 5", "")
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("waiter did not wake on publish")
	}
	require.NoError(t, waitErr)
	assert.Equal(t, "Player A played Red 5", msg)
	assert.Equal(t, 0, backend.SubscriberCount("g1"), "subscription must be closed")
}

func TestWaitTimesOut(t *testing.T) {
	g, backend := setupGame(t, threePlayerRecord(), "B")

	_, err := g.Wait(context.Background(), 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrWaitTimeout)
	assert.Equal(t, 0, backend.SubscriberCount("g1"))
}

func TestWaitHonorsContextCancel(t *testing.T) {
	g, _ := setupGame(t, threePlayerRecord(), "B")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := g.Wait(ctx, 5*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
