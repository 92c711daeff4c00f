package control_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvcontrol/control"
)

var _ = Describe("Config", func() {
	Describe("defaults", func() {
		It("should create a valid default config", func() {
			config := control.DefaultConfig()
			Expect(config.Validate()).To(Succeed())
			Expect(config.RetryWindow).To(Equal(control.DefaultRetryWindow))
		})
	})

	Describe("validation", func() {
		It("should reject a zero retry window", func() {
			config := control.DefaultConfig()
			config.RetryWindow = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a non-power-of-2 BHT size", func() {
			config := control.DefaultConfig()
			config.BHTSize = 1000
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a non-power-of-2 BTB size", func() {
			config := control.DefaultConfig()
			config.BTBSize = 100
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a cache smaller than one set", func() {
			config := control.DefaultConfig()
			config.ICacheSize = 16
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a zero refill latency", func() {
			config := control.DefaultConfig()
			config.RefillLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should create an independent copy", func() {
			original := control.DefaultConfig()
			clone := original.Clone()

			clone.RetryWindow = 7

			Expect(original.RetryWindow).To(Equal(control.DefaultRetryWindow))
			Expect(clone.RetryWindow).To(Equal(7))
		})
	})

	Describe("file operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "control-config-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load a config", func() {
			original := control.DefaultConfig()
			original.RetryWindow = 3
			original.RefillLatency = 9

			path := filepath.Join(tempDir, "control.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := control.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.RetryWindow).To(Equal(3))
			Expect(loaded.RefillLatency).To(Equal(uint64(9)))
		})

		It("should keep defaults for fields missing from the file", func() {
			path := filepath.Join(tempDir, "partial.json")
			err := os.WriteFile(path, []byte(`{"retry_window": 5}`), 0644)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := control.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.RetryWindow).To(Equal(5))
			Expect(loaded.BHTSize).To(Equal(uint32(1024)))
		})

		It("should return an error for a non-existent file", func() {
			_, err := control.LoadConfig(filepath.Join(tempDir, "missing.json"))
			Expect(err).To(HaveOccurred())
		})

		It("should return an error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = control.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
