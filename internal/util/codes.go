package util

import "crypto/rand"

// Alphabet for invite codes: uppercase alphanumerics without the easily
// confused 0/O and 1/I.
const inviteAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewInviteCode returns an 8-character code students redeem to self-enroll.
func NewInviteCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf)
}
