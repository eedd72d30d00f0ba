package docwire

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/value"
	"github.com/arloliu/docwire/writer"
)

func TestEncode(t *testing.T) {
	doc := D{{Key: "name", Value: value.String("alice")}}

	encoded, err := Encode(doc)
	require.NoError(t, err)
	require.True(t, encoded.Generated())

	raw := bson.Raw(encoded.Bytes())
	require.NoError(t, raw.Validate())
	require.Equal(t, "alice", raw.Lookup("name").StringValue())

	again, err := Encode(WithID(doc, encoded.ID()))
	require.NoError(t, err)
	require.Equal(t, encoded.Bytes(), again.Bytes())
}

func TestEncode_Shapes(t *testing.T) {
	for _, doc := range []document.Document{
		M{"a": value.Int32(1)},
		D{{Key: "a", Value: value.Int32(1)}},
		Flat{"a", value.Int32(1)},
	} {
		encoded, err := Encode(doc)
		require.NoError(t, err)

		elems, err := bson.Raw(encoded.Bytes()).Elements()
		require.NoError(t, err)
		require.Equal(t, "_id", elems[0].Key())
		require.Equal(t, "a", elems[1].Key())
	}
}

func TestNewEncoder(t *testing.T) {
	enc, err := NewEncoder(writer.WithMaxSize(10))
	require.NoError(t, err)

	_, err = enc.Encode(M{})
	require.ErrorIs(t, err, errs.ErrDocumentTooLarge)

	_, err = NewEncoder(writer.WithMaxSize(0))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestNewObjectID(t *testing.T) {
	a, b := NewObjectID(), NewObjectID()
	require.NotEqual(t, a, b)
	require.Len(t, a.Hex(), 24)
}
