package s3_test

import (
	"hostel/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/receipts/BK1.txt", s3.ObjectURL("https://cdn.example.com/", "hostel", "receipts/BK1.txt"))
	assert.Equal(t, "s3://hostel/receipts/BK1.txt", s3.ObjectURL("", "hostel", "receipts/BK1.txt"))
}
