package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/careercompass/internal/config"
	"github.com/muhammadolammi/careercompass/internal/logger"
	"github.com/muhammadolammi/careercompass/internal/retry"
	"github.com/muhammadolammi/careercompass/internal/synchronizer"
)

const (
	mimePlain = "text/plain"
	mimePDF   = "application/pdf"
	mimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	sessionUpdatesExchange = "session_updates"
)

// --- Resumes ---

// r2Resumes reads uploaded resumes out of an R2 bucket.
type r2Resumes struct {
	client *s3.Client
	bucket string
	policy retry.Policy
}

func newR2Resumes(awsConfig aws.Config, r2 config.R2Config) *r2Resumes {
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID))
	})
	return &r2Resumes{
		client: client,
		bucket: r2.Bucket,
		policy: retry.Policy{Attempts: 3, Backoff: 500 * time.Millisecond},
	}
}

func (r *r2Resumes) ResumeText(ctx context.Context, key, mime string) (string, error) {
	data, err := retry.Do(ctx, r.policy, func(ctx context.Context) ([]byte, error) {
		return DownloadFromR2(ctx, r.client, r.bucket, key)
	})
	if err != nil {
		return "", err
	}
	if mime == "" {
		mime = mimeFromKey(key)
	}
	return ExtractResumeText(mime, data)
}

func mimeFromKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDocx
	case ".txt":
		return mimePlain
	default:
		return ""
	}
}

func DownloadFromR2(ctx context.Context, client *s3.Client, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func ExtractResumeText(mime string, data []byte) (string, error) {
	switch mime {
	case mimePlain:
		return string(data), nil
	case mimePDF:
		return extractPDFText(bytes.NewReader(data))
	case mimeDocx:
		return extractDocxText(bytes.NewReader(data))
	default:
		return "", fmt.Errorf("unsupported file type: %q", mime)
	}
}

func extractPDFText(reader *bytes.Reader) (string, error) {
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var text strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, _ := page.GetPlainText(nil)
		text.WriteString(content)
	}
	return strings.TrimSpace(text.String()), nil
}

func extractDocxText(reader *bytes.Reader) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// --- Sync events ---

// amqpNotifier publishes synchronizer outcomes to the session_updates topic
// exchange, one routing key per identity.
type amqpNotifier struct {
	conn *amqp.Connection
	log  *logger.Logger
}

func newAMQPNotifier(conn *amqp.Connection, log *logger.Logger) (*amqpNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(sessionUpdatesExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declaring %s exchange: %w", sessionUpdatesExchange, err)
	}
	return &amqpNotifier{conn: conn, log: log}, nil
}

func (n *amqpNotifier) Notify(ctx context.Context, ev synchronizer.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.Debug("publishing sync event", "identity", ev.IdentityID, "entity", ev.Entity, "status", ev.Status)
	return publishSessionUpdate(n.conn, ev.IdentityID, ev)
}

func routingKey(identityID string) string {
	if identityID == "" {
		identityID = "unidentified"
	}
	return fmt.Sprintf("session.%s", identityID)
}

func publishSessionUpdate(rabbitConn *amqp.Connection, identityID string, update any) error {
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}

	ch, err := rabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		sessionUpdatesExchange,
		routingKey(identityID),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
}
