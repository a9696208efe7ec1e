package bookfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/mattetti/filebuffer"
)

// s3ReadChunkSize bounds the byte range requested per GetObject call.
const s3ReadChunkSize = 16 * 1024 * 1024

// S3FileSystem reads and writes objects addressed as s3://bucket/key.
// S3 has no empty directories: a prefix only exists while it holds objects,
// except for the bucket root.
type S3FileSystem struct {
	client *s3.S3
}

func parseS3URI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("invalid s3 location %q", uri)
	}
	trimmed := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("s3 location %q has no bucket", uri)
	}
	if len(parts) == 1 {
		return parts[0], "", nil
	}
	return parts[0], parts[1], nil
}

func (s *S3FileSystem) ListFiles(dir, pattern string) ([]FileInfo, error) {
	bucket, prefix, err := parseS3URI(dir)
	if err != nil {
		return nil, err
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	files := make([]FileInfo, 0)
	var matchErr error
	params := &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}
	err = s.client.ListObjectsV2Pages(params,
		func(page *s3.ListObjectsV2Output, _ bool) bool {
			for _, object := range page.Contents {
				key := aws.StringValue(object.Key)
				matched, err := path.Match(pattern, path.Base(key))
				if err != nil {
					matchErr = err
					return false
				}
				if !matched || strings.HasSuffix(key, "/") {
					continue
				}
				files = append(files, FileInfo{
					Name: fmt.Sprintf("s3://%s/%s", bucket, key),
					Size: aws.Int64Value(object.Size),
				})
			}
			return true
		})
	if matchErr != nil {
		return nil, matchErr
	}
	return files, err
}

func (s *S3FileSystem) OpenReader(filePath string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URI(filePath)
	if err != nil {
		return nil, err
	}
	objStat, err := s.Stat(filePath)
	if err != nil {
		return nil, err
	}

	return &s3Reader{
		client:    s.client,
		bucket:    bucket,
		key:       key,
		chunkSize: s3ReadChunkSize,
		totalSize: objStat.Size,
	}, nil
}

// OpenWriter buffers the object in memory and uploads it with a single
// PutObject on Close.
func (s *S3FileSystem) OpenWriter(filePath string) (io.WriteCloser, error) {
	bucket, key, err := parseS3URI(filePath)
	if err != nil {
		return nil, err
	}

	return &s3Writer{
		client: s.client,
		bucket: bucket,
		key:    key,
		buf:    filebuffer.New([]byte{}),
	}, nil
}

func (s *S3FileSystem) Stat(filePath string) (FileInfo, error) {
	bucket, key, err := parseS3URI(filePath)
	if err != nil {
		return FileInfo{}, err
	}

	if key == "" {
		_, err := s.client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(bucket)})
		if err != nil {
			return FileInfo{}, err
		}
		return FileInfo{Name: filePath, IsDir: true}, nil
	}

	if !strings.HasSuffix(key, "/") {
		head, err := s.client.HeadObject(&s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err == nil {
			return FileInfo{
				Name: filePath,
				Size: aws.Int64Value(head.ContentLength),
			}, nil
		}
		var aerr awserr.Error
		if !errors.As(err, &aerr) || aerr.Code() != "NotFound" {
			return FileInfo{}, err
		}
	}

	dirPrefix := strings.TrimSuffix(key, "/") + "/"
	result, err := s.client.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(dirPrefix),
		MaxKeys: aws.Int64(1),
	})
	if err != nil {
		return FileInfo{}, err
	}
	if len(result.Contents) > 0 {
		return FileInfo{Name: filePath, IsDir: true}, nil
	}

	return FileInfo{}, fmt.Errorf("%s: %w", filePath, os.ErrNotExist)
}

func (s *S3FileSystem) Init() error {
	os.Setenv("AWS_SDK_LOAD_CONFIG", "true")
	sess, err := session.NewSession()
	if err != nil {
		return err
	}
	s.client = s3.New(sess)
	return nil
}

// Join joins path elements with "/", keeping the s3:// scheme intact.
func (s *S3FileSystem) Join(elem ...string) string {
	stripped := make([]string, 0, len(elem))
	for i, e := range elem {
		if i == 0 {
			stripped = append(stripped, strings.TrimSuffix(e, "/"))
			continue
		}
		if e = strings.Trim(e, "/"); e != "" {
			stripped = append(stripped, e)
		}
	}
	return strings.Join(stripped, "/")
}

type s3Writer struct {
	client *s3.S3
	bucket string
	key    string
	buf    *filebuffer.Buffer
}

func (s *s3Writer) Write(p []byte) (n int, err error) {
	return s.buf.Write(p)
}

func (s *s3Writer) Close() error {
	s.buf.Seek(0, io.SeekStart)
	input := &s3.PutObjectInput{
		Body:   s.buf,
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	}
	_, err := s.client.PutObject(input)
	return err
}

func (s *s3Writer) Discard() error {
	s.buf = nil
	return nil
}

type s3Reader struct {
	client    *s3.S3
	bucket    string
	key       string
	offset    int64
	chunkSize int64
	chunk     io.ReadCloser
	totalSize int64
}

func (s *s3Reader) loadNextChunk() error {
	size := min(s.chunkSize, s.totalSize-s.offset)
	params := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", s.offset, s.offset+size-1)),
	}
	output, err := s.client.GetObject(params)
	if err != nil {
		return err
	}
	s.offset += size
	s.chunk = output.Body
	return nil
}

func (s *s3Reader) Read(b []byte) (n int, err error) {
	if s.chunk == nil {
		if s.offset >= s.totalSize {
			return 0, io.EOF
		}
		if err := s.loadNextChunk(); err != nil {
			return 0, err
		}
	}

	n, err = s.chunk.Read(b)
	if err == io.EOF {
		s.chunk.Close()
		s.chunk = nil
		if s.offset < s.totalSize {
			err = nil
		}
	}
	return n, err
}

func (s *s3Reader) Close() error {
	if s.chunk == nil {
		return nil
	}
	return s.chunk.Close()
}
