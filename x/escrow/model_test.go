package escrow

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLayout(t *testing.T) {
	maker := weavetest.NewCondition().Address()
	taker := weavetest.NewCondition().Address()
	rec := &EscrowRecord{
		Maker:           maker,
		MakerAssetClass: "FOO",
		TakerAssetClass: "CLAIMTOK",
		Taker:           taker,
		OfferAmount:     1,
		Seed:            0x0102030405060708,
		Expiry:          1100,
		LockingPeriod:   500,
		AuthorityBump:   255,
		VaultBump:       254,
		RecordBump:      253,
		CreatedTime:     100,
	}

	raw, err := rec.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, RecordSize, len(raw))

	disc := sha256.Sum256([]byte("account:Escrow"))
	assert.Equal(t, disc[:8], raw[0:8])
	assert.Equal(t, []byte(maker), raw[8:28])
	assert.Equal(t, []byte("FOO\x00\x00\x00\x00\x00"), raw[28:36])
	assert.Equal(t, []byte("CLAIMTOK"), raw[36:44])
	assert.Equal(t, []byte(taker), raw[44:64])
	assert.Equal(t, byte(1), raw[64])
	assert.Equal(t, uint64(0x0102030405060708), binary.LittleEndian.Uint64(raw[65:73]))
	assert.Equal(t, byte(8), raw[65])
	assert.Equal(t, uint64(1100), binary.LittleEndian.Uint64(raw[73:81]))
	assert.Equal(t, uint64(500), binary.LittleEndian.Uint64(raw[81:89]))
	assert.Equal(t, []byte{255, 254, 253}, raw[89:92])
	assert.Equal(t, uint64(100), binary.LittleEndian.Uint64(raw[92:100]))

	var got EscrowRecord
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, rec, &got)
}

func TestRecordUnmarshalRejects(t *testing.T) {
	rec := &EscrowRecord{
		Maker:           weavetest.NewCondition().Address(),
		MakerAssetClass: "FOO",
		TakerAssetClass: "BAR",
		Taker:           weavetest.NewCondition().Address(),
		OfferAmount:     1,
	}
	raw, err := rec.Marshal()
	require.NoError(t, err)

	var got EscrowRecord
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(raw[:99])))
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(append(raw, 0))))

	other := append([]byte(nil), raw...)
	other[0] ^= 0xff
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(other)))
}

func TestRecordValidate(t *testing.T) {
	valid := func() *EscrowRecord {
		return &EscrowRecord{
			Maker:           weavetest.NewCondition().Address(),
			MakerAssetClass: "FOO",
			TakerAssetClass: "BAR",
			Taker:           weavetest.NewCondition().Address(),
			OfferAmount:     1,
		}
	}
	cases := map[string]struct {
		mutate  func(*EscrowRecord)
		wantErr *errors.Error
	}{
		"valid":              {mutate: func(*EscrowRecord) {}},
		"missing maker":      {mutate: func(e *EscrowRecord) { e.Maker = nil }, wantErr: errors.ErrInput},
		"short taker":        {mutate: func(e *EscrowRecord) { e.Taker = e.Taker[:10] }, wantErr: errors.ErrInput},
		"bad ticker":         {mutate: func(e *EscrowRecord) { e.MakerAssetClass = "foo" }, wantErr: errors.ErrCurrency},
		"ticker too long":    {mutate: func(e *EscrowRecord) { e.TakerAssetClass = "ABCDEFGHI" }, wantErr: errors.ErrCurrency},
		"offer amount not 1": {mutate: func(e *EscrowRecord) { e.OfferAmount = 2 }, wantErr: errors.ErrModel},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := valid()
			tc.mutate(rec)
			if err := rec.Validate(); tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err))
			}
		})
	}
}

func TestTimeChecks(t *testing.T) {
	rec := &EscrowRecord{Expiry: 1100, LockingPeriod: 500, CreatedTime: 100}

	assert.Equal(t, false, rec.IsExpired(100))
	assert.Equal(t, false, rec.IsExpired(1099))
	assert.Equal(t, true, rec.IsExpired(1100))
	assert.Equal(t, true, rec.IsExpired(-1))

	assert.Equal(t, false, rec.IsUnlocked(599))
	assert.Equal(t, true, rec.IsUnlocked(600))
	assert.Equal(t, false, rec.IsUnlocked(-1))

	overflow := &EscrowRecord{LockingPeriod: ^uint64(0), CreatedTime: 10}
	assert.Equal(t, false, overflow.IsUnlocked(1<<62))

	noLock := &EscrowRecord{CreatedTime: 10}
	assert.Equal(t, true, noLock.IsUnlocked(10))
}
