package escrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/orm"
)

const (
	// BucketName is where we store the escrow records
	BucketName = "escrow"

	// RecordSize is the length of a serialized record.
	RecordSize = 100

	// offerAmount is the number of claim tokens exchanged by one escrow.
	offerAmount = 1
)

// recordDiscriminator prefixes every serialized record.
var recordDiscriminator = func() [8]byte {
	var d [8]byte
	sum := sha256.Sum256([]byte("account:Escrow"))
	copy(d[:], sum[:8])
	return d
}()

// EscrowRecord describes a single escrow. It is stored under the derived
// record address of the maker and seed.
type EscrowRecord struct {
	Maker           tescrow.Address
	MakerAssetClass string
	TakerAssetClass string
	Taker           tescrow.Address
	// OfferAmount is always 1.
	OfferAmount uint8
	Seed        uint64
	// Expiry is the block height at which claiming is no longer possible.
	Expiry uint64
	// LockingPeriod is the number of blocks after creation before the
	// escrow can be settled.
	LockingPeriod uint64
	AuthorityBump uint8
	VaultBump     uint8
	RecordBump    uint8
	// CreatedTime is the block height of creation.
	CreatedTime uint64
}

var _ orm.Model = (*EscrowRecord)(nil)

// recordLayout is the fixed size wire representation of a record.
type recordLayout struct {
	Discriminator   [8]byte
	Maker           [tescrow.AddressLength]byte
	MakerAssetClass [coin.TickerLength]byte
	TakerAssetClass [coin.TickerLength]byte
	Taker           [tescrow.AddressLength]byte
	OfferAmount     uint8
	Seed            uint64
	Expiry          uint64
	LockingPeriod   uint64
	AuthorityBump   uint8
	VaultBump       uint8
	RecordBump      uint8
	CreatedTime     uint64
}

// Validate ensures the record is consistent.
func (e *EscrowRecord) Validate() error {
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := e.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	if !coin.IsCC(e.MakerAssetClass) {
		return errors.Wrapf(errors.ErrCurrency, "maker asset class %q", e.MakerAssetClass)
	}
	if !coin.IsCC(e.TakerAssetClass) {
		return errors.Wrapf(errors.ErrCurrency, "taker asset class %q", e.TakerAssetClass)
	}
	if e.OfferAmount != offerAmount {
		return errors.Wrapf(errors.ErrModel, "offer amount must be %d", offerAmount)
	}
	return nil
}

// Marshal writes the record using the fixed little endian layout.
func (e *EscrowRecord) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	l := recordLayout{
		Discriminator: recordDiscriminator,
		OfferAmount:   e.OfferAmount,
		Seed:          e.Seed,
		Expiry:        e.Expiry,
		LockingPeriod: e.LockingPeriod,
		AuthorityBump: e.AuthorityBump,
		VaultBump:     e.VaultBump,
		RecordBump:    e.RecordBump,
		CreatedTime:   e.CreatedTime,
	}
	copy(l.Maker[:], e.Maker)
	copy(l.Taker[:], e.Taker)
	copy(l.MakerAssetClass[:], e.MakerAssetClass)
	copy(l.TakerAssetClass[:], e.TakerAssetClass)

	var buf bytes.Buffer
	buf.Grow(RecordSize)
	if err := binary.Write(&buf, binary.LittleEndian, &l); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return buf.Bytes(), nil
}

// Unmarshal reads a record created by Marshal. Data of a different size or
// with another discriminator is rejected.
func (e *EscrowRecord) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrModel, "record size %d", len(raw))
	}
	var l recordLayout
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &l); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if l.Discriminator != recordDiscriminator {
		return errors.Wrap(errors.ErrModel, "not an escrow record")
	}
	*e = EscrowRecord{
		Maker:           append(tescrow.Address(nil), l.Maker[:]...),
		MakerAssetClass: unpad(l.MakerAssetClass[:]),
		TakerAssetClass: unpad(l.TakerAssetClass[:]),
		Taker:           append(tescrow.Address(nil), l.Taker[:]...),
		OfferAmount:     l.OfferAmount,
		Seed:            l.Seed,
		Expiry:          l.Expiry,
		LockingPeriod:   l.LockingPeriod,
		AuthorityBump:   l.AuthorityBump,
		VaultBump:       l.VaultBump,
		RecordBump:      l.RecordBump,
		CreatedTime:     l.CreatedTime,
	}
	return nil
}

func unpad(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}

// IsExpired returns true when the escrow can no longer be claimed at the
// given height.
func (e *EscrowRecord) IsExpired(height int64) bool {
	return height < 0 || uint64(height) >= e.Expiry
}

// IsUnlocked returns true when the escrow can be settled at the given
// height.
func (e *EscrowRecord) IsUnlocked(height int64) bool {
	if height < 0 {
		return false
	}
	unlock := e.CreatedTime + e.LockingPeriod
	if unlock < e.CreatedTime {
		// Overflow. Never unlocks.
		return false
	}
	return uint64(height) >= unlock
}

// NewEscrow creates an escrow orm.Object stored under the record address.
func NewEscrow(key tescrow.Address, rec *EscrowRecord) orm.Object {
	return orm.NewSimpleObj(key, rec)
}

// AsEscrow extracts an *EscrowRecord value or nil from the object.
// Must be called on a Bucket result that is an *EscrowRecord,
// will panic on bad type.
func AsEscrow(obj orm.Object) *EscrowRecord {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*EscrowRecord)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a Bucket with default name. Records are indexed by
// maker and by taker.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, NewEscrow(nil, new(EscrowRecord))).
		WithIndex("maker", makerIndex).
		WithIndex("taker", takerIndex)
	return Bucket{Bucket: b}
}

// GetEscrow returns the record stored under the address or ErrNotFound.
func (b Bucket) GetEscrow(db tescrow.ReadOnlyKVStore, addr tescrow.Address) (*EscrowRecord, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)
	}
	return AsEscrow(obj), nil
}

// Save enforces the proper type
func (b Bucket) Save(db tescrow.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*EscrowRecord); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

func makerIndex(obj orm.Object) ([]byte, error) {
	e := AsEscrow(obj)
	if e == nil {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return e.Maker, nil
}

func takerIndex(obj orm.Object) ([]byte, error) {
	e := AsEscrow(obj)
	if e == nil {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return e.Taker, nil
}
