package particles

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestParticles(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Particles Suite")
}
