// Package testutil provides test data generators.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// TestDataGenerator provides methods for generating test data.
type TestDataGenerator struct {
	rand *rand.Rand
}

// NewTestDataGenerator creates a new test data generator with a seeded random source.
func NewTestDataGenerator(seed int64) *TestDataGenerator {
	return &TestDataGenerator{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// GenerateObjectList generates a list of test S3 objects.
func (g *TestDataGenerator) GenerateObjectList(count int, prefix string) []types.Object {
	objects := make([]types.Object, count)
	baseTime := time.Now().Add(-24 * time.Hour)

	for i := 0; i < count; i++ {
		key := fmt.Sprintf("%sobject-%04d.txt", prefix, i)
		size := int64(g.rand.Intn(1000000) + 1000) // 1KB to 1MB
		modified := baseTime.Add(time.Duration(i) * time.Minute)
		objects[i] = CreateTestObject(key, size, modified)
	}

	return objects
}
