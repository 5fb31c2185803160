// Package codec serializes fight results into the compact versioned binary
// log that gets persisted and replayed. The encoding is lossless: decoding
// an encoded result yields the identical value, which is what lets a stored
// log serve as an independently verifiable record of the fight.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pefman/arena-duel/internal/models"
)

// Version is the current log layout version. Decoders dispatch on the
// version byte; anything above Version is from a future writer and is
// refused outright rather than half-parsed.
const Version = 1

const (
	headerLen = 5 // version u8, winner u8, condition u8, round count u16
	recordLen = 6 // attack u8, defense u8, damage to A u16, damage to B u16

	// High bit of the attack byte marks which side attacked; the low bits
	// carry the attack code.
	attackerAFlag = 0x80
	attackMask    = 0x7f

	maxDamage = 0xffff
	maxRounds = 0xffff
)

var (
	ErrUnknownVersion = errors.New("unknown log version")
	ErrTruncated      = errors.New("truncated log")
	ErrCorrupt        = errors.New("corrupt log")
	ErrDamageOverflow = errors.New("damage exceeds field width")
	ErrTooManyRounds  = errors.New("round count exceeds field width")
)

// DecodedFight is a fight result together with the layout version it was
// read from.
type DecodedFight struct {
	Version byte `json:"version"`
	models.FightResult
}

// Encode serializes a fight result using the current layout version.
func Encode(res models.FightResult) ([]byte, error) {
	if len(res.Rounds) > maxRounds {
		return nil, fmt.Errorf("%w: %d rounds", ErrTooManyRounds, len(res.Rounds))
	}
	buf := make([]byte, headerLen, headerLen+recordLen*len(res.Rounds))
	buf[0] = Version
	if res.WinnerIsA {
		buf[1] = 1
	}
	buf[2] = byte(res.Condition)
	binary.BigEndian.PutUint16(buf[3:5], uint16(len(res.Rounds)))

	for i, r := range res.Rounds {
		if r.DamageToA < 0 || r.DamageToA > maxDamage || r.DamageToB < 0 || r.DamageToB > maxDamage {
			return nil, fmt.Errorf("%w: round %d", ErrDamageOverflow, i)
		}
		attack := byte(r.Attack)
		if r.AttackerIsA {
			attack |= attackerAFlag
		}
		var rec [recordLen]byte
		rec[0] = attack
		rec[1] = byte(r.Defense)
		binary.BigEndian.PutUint16(rec[2:4], uint16(r.DamageToA))
		binary.BigEndian.PutUint16(rec[4:6], uint16(r.DamageToB))
		buf = append(buf, rec[:]...)
	}
	return buf, nil
}

// Decode parses an encoded log back into a fight result. Unknown versions,
// truncation, trailing bytes and out-of-range codes are all fatal; there is
// no partial parse.
func Decode(buf []byte) (DecodedFight, error) {
	if len(buf) < headerLen {
		return DecodedFight{}, fmt.Errorf("%w: %d bytes", ErrTruncated, len(buf))
	}
	version := buf[0]
	if version != Version {
		return DecodedFight{}, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}
	if buf[1] > 1 {
		return DecodedFight{}, fmt.Errorf("%w: winner flag %d", ErrCorrupt, buf[1])
	}
	cond := models.WinCondition(buf[2])
	if cond > models.WinByDeath {
		return DecodedFight{}, fmt.Errorf("%w: win condition %d", ErrCorrupt, buf[2])
	}
	count := int(binary.BigEndian.Uint16(buf[3:5]))
	want := headerLen + recordLen*count
	if len(buf) < want {
		return DecodedFight{}, fmt.Errorf("%w: %d bytes, want %d", ErrTruncated, len(buf), want)
	}
	if len(buf) > want {
		return DecodedFight{}, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(buf)-want)
	}

	out := DecodedFight{Version: version}
	out.WinnerIsA = buf[1] == 1
	out.Condition = cond
	if count > 0 {
		out.Rounds = make([]models.RoundOutcome, 0, count)
	}
	for i := 0; i < count; i++ {
		rec := buf[headerLen+recordLen*i:]
		attack := models.AttackCode(rec[0] & attackMask)
		if attack > models.AttackCrit {
			return DecodedFight{}, fmt.Errorf("%w: attack code %d in round %d", ErrCorrupt, attack, i)
		}
		defense := models.DefenseCode(rec[1])
		if defense > models.DefenseCritRiposted {
			return DecodedFight{}, fmt.Errorf("%w: defense code %d in round %d", ErrCorrupt, defense, i)
		}
		out.Rounds = append(out.Rounds, models.RoundOutcome{
			AttackerIsA: rec[0]&attackerAFlag != 0,
			Attack:      attack,
			Defense:     defense,
			DamageToA:   int(binary.BigEndian.Uint16(rec[2:4])),
			DamageToB:   int(binary.BigEndian.Uint16(rec[4:6])),
		})
	}
	return out, nil
}
