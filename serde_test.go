package hexutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mocks and Helpers ---

// key is a two byte value with a borrowed byte view.
type key [2]byte

func (k *key) Bytes() []byte { return k[:] }

func (k *key) SetBytes(b []byte) error {
	if len(b) != len(k) {
		return InvalidLength(len(b))
	}
	copy(k[:], b)
	return nil
}

func (*key) Size() int { return 2 }

// oddKey only accepts values whose first byte is odd.
type oddKey struct{ key }

func (k *oddKey) SetBytes(b []byte) error {
	if len(b) == 2 && b[0]%2 == 0 {
		return Custom("first byte must be odd")
	}
	return k.key.SetBytes(b)
}

// tupleRecord is what tokenSerializer records for a tuple struct.
type tupleRecord struct {
	name   string
	n      int
	fields []byte
	ended  bool
}

// tokenSerializer records the calls a format receives.
type tokenSerializer struct {
	human  bool
	tokens []any
}

func (s *tokenSerializer) HumanReadable() bool { return s.human }

func (s *tokenSerializer) SerializeString(v string) error {
	s.tokens = append(s.tokens, v)
	return nil
}

func (s *tokenSerializer) SerializeTupleStruct(name string, n int) (TupleSerializer, error) {
	rec := &tupleRecord{name: name, n: n}
	s.tokens = append(s.tokens, rec)
	return rec, nil
}

func (r *tupleRecord) SerializeField(b byte) error {
	r.fields = append(r.fields, b)
	return nil
}

func (r *tupleRecord) End() error {
	r.ended = true
	return nil
}

// tokenDeserializer replays dynamically typed tokens: a string for text and an
// []any of numbers for a tuple.
type tokenDeserializer struct {
	human  bool
	noHint bool
	tokens []any
}

func (d *tokenDeserializer) HumanReadable() bool { return d.human }

func (d *tokenDeserializer) next() any {
	tok := d.tokens[0]
	d.tokens = d.tokens[1:]
	return tok
}

func (d *tokenDeserializer) DeserializeString(meta Metadata) (string, error) {
	tok := d.next()
	s, ok := tok.(string)
	if !ok {
		return "", NewTypeError(UnexpectedValue(tok), meta.Expecting)
	}
	return s, nil
}

func (d *tokenDeserializer) DeserializeTupleStruct(meta Metadata) (SeqAccess, error) {
	tok := d.next()
	items, ok := tok.([]any)
	if !ok {
		return nil, NewTypeError(UnexpectedValue(tok), meta.Expecting)
	}
	return &tokenSeq{items: items, hint: !d.noHint}, nil
}

type tokenSeq struct {
	items []any
	hint  bool
	read  int
}

func (s *tokenSeq) NextElement() (byte, bool, error) {
	if s.read >= len(s.items) {
		return 0, false, nil
	}
	v := s.items[s.read]
	s.read++
	b, err := FieldByte(v)
	return b, err == nil, err
}

func (s *tokenSeq) SizeHint() (int, bool) { return len(s.items), s.hint }

func fields(bs ...uint64) []any {
	out := make([]any, len(bs))
	for i, b := range bs {
		out[i] = b
	}
	return out
}

// --- Serialize ---

func TestSerializeHumanReadable(t *testing.T) {
	s := &tokenSerializer{human: true}
	require.NoError(t, Serialize(s, &key{0x34, 0x12}))
	assert.Equal(t, []any{"3412"}, s.tokens)
}

func TestSerializeBinary(t *testing.T) {
	s := &tokenSerializer{}
	require.NoError(t, Serialize(s, &key{0x34, 0x12}))
	require.Len(t, s.tokens, 1)

	rec := s.tokens[0].(*tupleRecord)
	assert.Equal(t, "key", rec.name)
	assert.Equal(t, 2, rec.n)
	assert.Equal(t, []byte{0x34, 0x12}, rec.fields)
	assert.True(t, rec.ended)
}

func TestSerializeVariableLengthBinary(t *testing.T) {
	s := &tokenSerializer{}
	require.NoError(t, Serialize(s, Bytes{1, 2, 3}))
	rec := s.tokens[0].(*tupleRecord)
	assert.Equal(t, "Bytes", rec.name)
	assert.Equal(t, 3, rec.n)
}

// --- Deserialize ---

type DeserializeTestSuite struct {
	suite.Suite
	expecting string
}

func (s *DeserializeTestSuite) SetupTest() {
	s.expecting = "a valid key (2 bytes of data)"
}

func (s *DeserializeTestSuite) decode(d *tokenDeserializer) (*key, *DecodeError) {
	var k key
	err := Deserialize(d, &k)
	if err == nil {
		return &k, nil
	}
	var de *DecodeError
	s.Require().ErrorAs(err, &de)
	return nil, de
}

func (s *DeserializeTestSuite) TestHumanReadable() {
	k, de := s.decode(&tokenDeserializer{human: true, tokens: []any{"3412"}})
	s.Require().Nil(de)
	s.Equal(key{0x34, 0x12}, *k)

	k, de = s.decode(&tokenDeserializer{human: true, tokens: []any{"ABCD"}})
	s.Require().Nil(de)
	s.Equal(key{0xab, 0xcd}, *k)
}

func (s *DeserializeTestSuite) TestHumanReadableOddLength() {
	_, de := s.decode(&tokenDeserializer{human: true, tokens: []any{"341"}})
	s.Require().NotNil(de)
	s.Equal(DecodeLength, de.Kind)
	s.Equal(3, de.Len)
	s.EqualError(de, "invalid length 3, expected "+s.expecting)
}

func (s *DeserializeTestSuite) TestHumanReadableWrongLength() {
	_, de := s.decode(&tokenDeserializer{human: true, tokens: []any{"341200"}})
	s.Require().NotNil(de)
	s.Equal(DecodeLength, de.Kind)
	s.Equal(6, de.Len)
}

func (s *DeserializeTestSuite) TestHumanReadableBadCharacter() {
	_, de := s.decode(&tokenDeserializer{human: true, tokens: []any{"34g2"}})
	s.Require().NotNil(de)
	s.Equal(DecodeValue, de.Kind)
	s.EqualError(de, "invalid value: character `g`, expected "+s.expecting)

	var ce *Error
	s.Require().ErrorAs(de, &ce)
	s.Equal(2, ce.Index)
}

func (s *DeserializeTestSuite) TestHumanReadableWrongType() {
	_, de := s.decode(&tokenDeserializer{human: true, tokens: []any{uint64(5)}})
	s.Require().NotNil(de)
	s.Equal(DecodeType, de.Kind)
	s.EqualError(de, "invalid type: integer `5`, expected "+s.expecting)
}

func (s *DeserializeTestSuite) TestBinary() {
	k, de := s.decode(&tokenDeserializer{tokens: []any{fields(0x34, 0x12)}})
	s.Require().Nil(de)
	s.Equal(key{0x34, 0x12}, *k)
}

func (s *DeserializeTestSuite) TestBinaryMissingField() {
	_, de := s.decode(&tokenDeserializer{tokens: []any{fields(0x34)}})
	s.Require().NotNil(de)
	s.Equal(DecodeLength, de.Kind)
	s.Equal(1, de.Len)

	_, de = s.decode(&tokenDeserializer{tokens: []any{fields()}})
	s.Require().NotNil(de)
	s.Equal(0, de.Len)
}

func (s *DeserializeTestSuite) TestBinaryExtraField() {
	_, de := s.decode(&tokenDeserializer{tokens: []any{fields(0x34, 0x12, 0x00)}})
	s.Require().NotNil(de)
	s.Equal(DecodeLength, de.Kind)
	s.Equal(3, de.Len, "reports the declared size")

	_, de = s.decode(&tokenDeserializer{noHint: true, tokens: []any{fields(0x34, 0x12, 0x00, 0x00)}})
	s.Require().NotNil(de)
	s.Equal(DecodeLength, de.Kind)
	s.Equal(2, de.Len, "falls back to the type's length")
}

func (s *DeserializeTestSuite) TestBinaryFieldOutOfRange() {
	_, de := s.decode(&tokenDeserializer{tokens: []any{fields(0x34, 0x100)}})
	s.Require().NotNil(de)
	s.Equal(DecodeValue, de.Kind)
	s.Equal("u8", de.Expected)
}

func (s *DeserializeTestSuite) TestBinaryWrongType() {
	_, de := s.decode(&tokenDeserializer{tokens: []any{"3412"}})
	s.Require().NotNil(de)
	s.Equal(DecodeType, de.Kind)
	s.Equal(Unexpected{Kind: UnexpectedStr, Str: "3412"}, de.Unexpected)
}

func (s *DeserializeTestSuite) TestBinaryUnknownLength() {
	var b Bytes
	err := Deserialize(&tokenDeserializer{tokens: []any{fields(1, 2)}}, &b)

	var de *DecodeError
	s.Require().ErrorAs(err, &de)
	s.Equal(DecodeCustom, de.Kind)
	s.EqualError(de, "the type Bytes does not have a known length")
}

func (s *DeserializeTestSuite) TestCustomRejection() {
	var k oddKey
	err := Deserialize(&tokenDeserializer{human: true, tokens: []any{"3412"}}, &k)
	var de *DecodeError
	s.Require().ErrorAs(err, &de)
	s.Equal(DecodeValue, de.Kind)
	s.Equal("first byte must be odd", de.Expected)
	s.ErrorIs(err, ErrCustom)

	err = Deserialize(&tokenDeserializer{tokens: []any{fields(0x34, 0x12)}}, &k)
	s.Require().ErrorAs(err, &de)
	s.EqualError(de, "invalid value: sequence, expected first byte must be odd")

	s.Require().NoError(Deserialize(&tokenDeserializer{human: true, tokens: []any{"3512"}}, &k))
	s.Equal(key{0x35, 0x12}, k.key)
}

func TestDeserialize(t *testing.T) {
	suite.Run(t, new(DeserializeTestSuite))
}

// --- Round trips ---

func TestSerializeRoundTrip(t *testing.T) {
	type pair struct {
		A uint16
		B uint32
	}
	for _, human := range []bool{true, false} {
		in := &Fixed[pair]{Payload: pair{A: 0xbeef, B: 7}}

		s := &tokenSerializer{human: human}
		require.NoError(t, Serialize(s, in))

		var tokens []any
		if human {
			tokens = s.tokens
		} else {
			rec := s.tokens[0].(*tupleRecord)
			assert.Len(t, rec.fields, rec.n)
			items := make([]any, len(rec.fields))
			for i, b := range rec.fields {
				items[i] = uint64(b)
			}
			tokens = []any{items}
		}

		var out Fixed[pair]
		require.NoError(t, Deserialize(&tokenDeserializer{human: human, tokens: tokens}, &out))
		assert.Equal(t, in.Payload, out.Payload, "human=%v", human)
	}
}

func TestHumanReadableMatchesText(t *testing.T) {
	v := &Int[uint32]{V: 0xdeadbeef}
	s := &tokenSerializer{human: true}
	require.NoError(t, Serialize(s, v))
	assert.Equal(t, []any{String(v)}, s.tokens)
	assert.Equal(t, []any{"efbeadde"}, s.tokens)
}
