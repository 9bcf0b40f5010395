package strip

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/duosnap/booth/pkg/config"
	"github.com/duosnap/booth/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type s3Store struct {
	c      *minio.Client
	bucket string
	log    *logger.Logger
}

func newS3Store(conf config.S3, log *logger.Logger) (*s3Store, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.Key, conf.Secret, ""),
		Secure: true,
	})
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(context.Background(), conf.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.New("bucket doesn't exist")
	}
	return &s3Store{c: client, bucket: conf.Bucket, log: log}, nil
}

func (s *s3Store) Put(name string, data []byte) error {
	if !validName(name) {
		return ErrBadName
	}
	info, err := s.c.PutObject(context.Background(), s.bucket, name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg", SendContentMd5: true})
	if err != nil {
		return err
	}
	s.log.Debug().Msgf("Uploaded: %v", info)
	return nil
}

func (s *s3Store) Take(name string) (data []byte, err error) {
	if !validName(name) {
		return nil, ErrBadName
	}
	r, err := s.c.GetObject(context.Background(), s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, r.Close()) }()
	data, err = io.ReadAll(r)
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, s.c.RemoveObject(context.Background(), s.bucket, name, minio.RemoveObjectOptions{})
}
