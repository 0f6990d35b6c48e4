package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/platform/normalize"
)

func Test_Key(t *testing.T) {
	assert.Equal(t, "978-4-10-101001-6", normalize.Key(" ９７８－４－１０－１０１００１－６ "))
	assert.Equal(t, "", normalize.Key("   "))
}

func Test_Fold(t *testing.T) {
	assert.Equal(t, "alice@example.com", normalize.Fold("  Alice@Example.COM "))
	assert.Equal(t, "%tolkien%", normalize.LikePattern("Tolkien"))
}

func Test_LikePattern_EscapesWildcards(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"%", "%!%%"},
		{"snake_case", "%snake!_case%"},
		{"Wow!", "%wow!!%"},
		{"100% Pure", "%100!% pure%"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, normalize.LikePattern(tc.in))
		})
	}
}
