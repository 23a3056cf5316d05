// Package partition maps record keys to topic partitions.
//
// A Partitioner is the single capability interface consumed by the routing
// layer: it returns the set of partitions a key belongs to. Callers that only
// have a key serializer are adapted with ForSerializer, which hashes the
// serialized key with the same murmur2 function Kafka's default partitioner
// uses, so routing decisions agree with where an upstream producer placed
// the key.
package partition

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNilSerializer      = errors.New("partition: serializer must not be nil")
	ErrUnsupportedKeyType = errors.New("partition: unsupported key type")
	ErrNoPartitions       = errors.New("partition: number of partitions must be positive")
)

// Partitioner determines which partition(s) of a topic a key belongs to.
type Partitioner interface {
	// Partitions returns the partition indices for the given key. The value
	// is available for value-dependent strategies and may be nil. A point
	// lookup strategy returns exactly one index; fan-out strategies used on
	// the write path may return several.
	Partitions(topic string, key, value any, numPartitions int32) ([]int32, error)
}

// PartitionerFunc adapts a plain function to the Partitioner interface.
type PartitionerFunc func(topic string, key, value any, numPartitions int32) ([]int32, error)

// Partitions implements Partitioner.
func (f PartitionerFunc) Partitions(topic string, key, value any, numPartitions int32) ([]int32, error) {
	return f(topic, key, value, numPartitions)
}

// Serializer converts a key into the bytes that are hashed for partitioning.
type Serializer interface {
	Serialize(topic string, key any) ([]byte, error)
}

// StringSerializer serializes string keys as their UTF-8 bytes.
type StringSerializer struct{}

// Serialize implements Serializer for string keys.
func (StringSerializer) Serialize(_ string, key any) ([]byte, error) {
	s, ok := key.(string)
	if !ok {
		return nil, fmt.Errorf("%w: want string, got %T", ErrUnsupportedKeyType, key)
	}
	return []byte(s), nil
}

// ByteSliceSerializer passes []byte keys through unchanged.
type ByteSliceSerializer struct{}

// Serialize implements Serializer for []byte keys.
func (ByteSliceSerializer) Serialize(_ string, key any) ([]byte, error) {
	b, ok := key.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: want []byte, got %T", ErrUnsupportedKeyType, key)
	}
	return b, nil
}

// ForSerializer returns the default single-partition strategy for keys
// serialized by s: murmur2 over the serialized key, modulo the partition
// count, wrapped in a one-element result.
func ForSerializer(s Serializer) Partitioner {
	return defaultPartitioner{ser: s}
}

type defaultPartitioner struct {
	ser Serializer
}

func (p defaultPartitioner) Partitions(topic string, key, _ any, numPartitions int32) ([]int32, error) {
	if p.ser == nil {
		return nil, ErrNilSerializer
	}
	if numPartitions <= 0 {
		return nil, ErrNoPartitions
	}
	data, err := p.ser.Serialize(topic, key)
	if err != nil {
		return nil, err
	}
	return []int32{int32(Murmur2(data)&0x7fffffff) % numPartitions}, nil
}

// Murmur2 computes the 32-bit murmur2 hash of data with the seed Kafka's
// client library uses (0x9747b28c). Kept bit-compatible so that a key routed
// here lands on the same partition a Kafka producer wrote it to.
func Murmur2(data []byte) uint32 {
	const (
		seed uint32 = 0x9747b28c
		m    uint32 = 0x5bd1e995
		r           = 24
	)

	h := seed ^ uint32(len(data))

	i := 0
	for ; i+4 <= len(data); i += 4 {
		k := uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24
		k *= m
		k ^= k >> r
		k *= m
		h *= m
		h ^= k
	}

	switch len(data) - i {
	case 3:
		h ^= uint32(data[i+2]) << 16
		fallthrough
	case 2:
		h ^= uint32(data[i+1]) << 8
		fallthrough
	case 1:
		h ^= uint32(data[i])
		h *= m
	}

	h ^= h >> 13
	h *= m
	h ^= h >> 15
	return h
}
