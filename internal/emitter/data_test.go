package emitter_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
	"github.com/frherrer/GoE2E-PageForge/internal/emitter"
)

func record(id string, cat domain.Category) domain.TestCaseRecord {
	return domain.TestCaseRecord{
		ID:       id,
		Category: cat,
		Fields:   map[string]string{"email": "user@example.com"},
		Expected: cat == domain.CategoryPositive,
	}
}

var _ = Describe("Records", func() {
	Describe("EncodeRecords", func() {
		It("should order the flat list positive, negative, boundary", func() {
			cases := map[domain.Category][]domain.TestCaseRecord{
				domain.CategoryBoundary: {record("boundary_email_at_max_length", domain.CategoryBoundary)},
				domain.CategoryPositive: {record("positive_all_fields_valid", domain.CategoryPositive)},
				domain.CategoryNegative: {record("negative_email_empty", domain.CategoryNegative)},
			}
			data, err := emitter.EncodeRecords(cases)
			Expect(err).ToNot(HaveOccurred())

			var decoded []domain.TestCaseRecord
			Expect(json.Unmarshal(data, &decoded)).To(Succeed())
			Expect(decoded).To(HaveLen(3))
			Expect(decoded[0].ID).To(Equal("positive_all_fields_valid"))
			Expect(decoded[1].ID).To(Equal("negative_email_empty"))
			Expect(decoded[2].ID).To(Equal("boundary_email_at_max_length"))
		})

		It("should produce an empty list when there are no cases", func() {
			data, err := emitter.EncodeRecords(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(data)).To(Equal("[]"))
		})
	})

	Describe("DecodeRecords", func() {
		It("should round-trip encoded records", func() {
			cases := map[domain.Category][]domain.TestCaseRecord{
				domain.CategoryPositive: {record("positive_all_fields_valid", domain.CategoryPositive)},
			}
			data, err := emitter.EncodeRecords(cases)
			Expect(err).ToNot(HaveOccurred())

			records, err := emitter.DecodeRecords(data)
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Fields).To(HaveKeyWithValue("email", "user@example.com"))
			Expect(records[0].Expected).To(BeTrue())
		})

		It("should reject malformed JSON", func() {
			_, err := emitter.DecodeRecords([]byte("{not json"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("decoding test data"))
		})

		It("should reject a record with an empty id", func() {
			data := `[{"id": "", "category": "positive", "fields": {"a": "b"}, "expected": true}]`
			_, err := emitter.DecodeRecords([]byte(data))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("empty id"))
		})

		It("should reject duplicate ids", func() {
			data := `[
				{"id": "dup", "category": "positive", "fields": {"a": "b"}, "expected": true},
				{"id": "dup", "category": "negative", "fields": {"a": ""}, "expected": false}
			]`
			_, err := emitter.DecodeRecords([]byte(data))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(`duplicate record id "dup"`))
		})

		It("should reject an unknown category", func() {
			data := `[{"id": "x", "category": "fuzz", "fields": {"a": "b"}, "expected": true}]`
			_, err := emitter.DecodeRecords([]byte(data))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(`unknown category "fuzz"`))
		})

		It("should reject a record without fields", func() {
			data := `[{"id": "x", "category": "positive", "fields": {}, "expected": true}]`
			_, err := emitter.DecodeRecords([]byte(data))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("record has no fields"))
		})
	})
})
