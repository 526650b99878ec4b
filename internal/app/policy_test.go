package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolicyByName(t *testing.T) {
	req := require.New(t)

	p, err := PolicyByName("kick")
	req.NoError(err)
	req.Equal(KickMember, p.OnBackPressure("r1", "c1"))

	p, err = PolicyByName("")
	req.NoError(err)
	req.IsType(SimplePolicy{}, p)

	p, err = PolicyByName("drop")
	req.NoError(err)
	req.Equal(DropNotification, p.OnBackPressure("r1", "c1"))

	_, err = PolicyByName("ignore")
	req.Error(err)
}
