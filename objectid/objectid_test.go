package objectid

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/arloliu/docwire/errs"
)

func TestFromHex(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id, err := FromHex("5f1d7c2a9b1e8a0001020304")
		require.NoError(t, err)
		require.Equal(t, ObjectID{0x5f, 0x1d, 0x7c, 0x2a, 0x9b, 0x1e, 0x8a, 0x00, 0x01, 0x02, 0x03, 0x04}, id)
		require.Equal(t, "5f1d7c2a9b1e8a0001020304", id.Hex())
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := FromHex("abc")
		require.ErrorIs(t, err, errs.ErrInvalidObjectIDHex)
	})

	t.Run("not hex", func(t *testing.T) {
		_, err := FromHex("zz1d7c2a9b1e8a0001020304")
		require.ErrorIs(t, err, errs.ErrInvalidObjectIDHex)
	})
}

func TestObjectID_HexRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), Size, Size).Draw(t, "raw")

		var id ObjectID
		copy(id[:], raw)

		parsed, err := FromHex(id.Hex())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})
}

func TestObjectID_Accessors(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := NewFromTimestamp(ts)

	require.Equal(t, ts, id.Timestamp())
	require.Equal(t, uint32(0), id.Counter())
	require.False(t, id.IsZero())
	require.True(t, NilObjectID.IsZero())
	require.Equal(t, `ObjectID("`+id.Hex()+`")`, id.String())
}

func TestObjectID_Compare(t *testing.T) {
	early := NewFromTimestamp(time.Unix(100, 0))
	late := NewFromTimestamp(time.Unix(200, 0))

	require.Equal(t, -1, early.Compare(late))
	require.Equal(t, 1, late.Compare(early))
	require.Equal(t, 0, early.Compare(early))
}

func TestObjectID_TextMarshaling(t *testing.T) {
	id := New()

	out, err := json.Marshal(map[string]ObjectID{"_id": id})
	require.NoError(t, err)
	require.JSONEq(t, `{"_id":"`+id.Hex()+`"}`, string(out))

	var back map[string]ObjectID
	require.NoError(t, json.Unmarshal(out, &back))
	require.Equal(t, id, back["_id"])

	var bad ObjectID
	require.ErrorIs(t, bad.UnmarshalText([]byte("nope")), errs.ErrInvalidObjectIDHex)
}
