package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stream_finder/internal/domain"
)

var categories = []domain.Category{
	{Name: "Just Chatting", ID: "509658"},
	{Name: "League of Legends", ID: "21779"},
	{Name: "Super Mario 64", ID: "2692"},
}

func TestChooseTerm(t *testing.T) {
	ctx := context.Background()
	s := NewSelector(strings.NewReader("  Super Mario  \nspeedrun\n"), &bytes.Buffer{})

	first, err := s.ChooseTerm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Super Mario", first)

	second, err := s.ChooseTerm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "speedrun", second)

	third, err := s.ChooseTerm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", third)
}

func TestChooseTerm_LongLine(t *testing.T) {
	long := strings.Repeat("a", 200*1024)
	s := NewSelector(strings.NewReader(long+"\n"), &bytes.Buffer{})

	term, err := s.ChooseTerm(context.Background())

	require.NoError(t, err)
	assert.Equal(t, long, term)
}

func TestChooseTerm_ContextCanceled(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	s := NewSelector(in, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := s.ChooseTerm(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// a line that arrives after the interrupt is still delivered in order
	go func() { _, _ = io.WriteString(w, "mario\n") }()
	term, err := s.ChooseTerm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mario", term)
}

func TestChooseGame_FirstValid(t *testing.T) {
	var out bytes.Buffer
	s := NewSelector(strings.NewReader("2\n"), &out)

	id, err := s.ChooseGame(context.Background(), categories)

	require.NoError(t, err)
	assert.Equal(t, "2692", id)
	assert.Equal(t,
		"0: Just Chatting\n1: League of Legends\n2: Super Mario 64\n"+
			"Choose a category from the list:\n"+
			"Category: Super Mario 64\n",
		out.String())
}

func TestChooseGame_Reprompts(t *testing.T) {
	var out bytes.Buffer
	s := NewSelector(strings.NewReader("abc\n3\n-1\n\n 1 \n0\n"), &out)

	id, err := s.ChooseGame(context.Background(), categories)

	require.NoError(t, err)
	assert.Equal(t, "21779", id)
	// a negative index is not a number at all
	assert.Equal(t, 3, strings.Count(out.String(), "Please enter a number:\n"))
	assert.Equal(t, 1, strings.Count(out.String(), "Please enter a number between 0 and 2:\n"))
	assert.Contains(t, out.String(), "Category: League of Legends\n")

	// the line after the accepted choice is left for the next prompt
	next, err := s.ChooseTerm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0", next)
}

func TestChooseGame_InputClosed(t *testing.T) {
	s := NewSelector(strings.NewReader("abc\n7\n"), &bytes.Buffer{})

	_, err := s.ChooseGame(context.Background(), categories)

	assert.ErrorIs(t, err, ErrNoInput)
}

func TestChooseGame_ContextCanceled(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	var out bytes.Buffer
	s := NewSelector(in, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ChooseGame(ctx, categories)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out.String(), "Choose a category from the list:\n")
}

func TestChooseGame_NoCategories(t *testing.T) {
	s := NewSelector(strings.NewReader("0\n"), &bytes.Buffer{})

	_, err := s.ChooseGame(context.Background(), nil)

	assert.Error(t, err)
}
