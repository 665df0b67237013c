package utils

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	encoder     *zstd.Encoder
	decoder     *zstd.Decoder
	codecErr    error
	codecLoader sync.Once
)

func loadCodec() error {
	codecLoader.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return codecErr
}

// Compress ..
func Compress(in []byte) (result []byte, err error) {
	if err = loadCodec(); err != nil {
		return nil, fmt.Errorf("Compress: %v", err)
	}
	return encoder.EncodeAll(in, nil), nil
}

// Decompress ..
func Decompress(in []byte) (result []byte, err error) {
	if err = loadCodec(); err != nil {
		return nil, fmt.Errorf("Decompress: %v", err)
	}
	result, err = decoder.DecodeAll(in, nil)
	if err != nil {
		return nil, fmt.Errorf("Decompress: %v", err)
	}
	return result, nil
}
