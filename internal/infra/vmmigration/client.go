// Where: vmm/internal/infra/vmmigration/client.go
// What: VM Migration SDK adapter.
// Why: Provide ports.MigrationService on top of the generated Go client.
package vmmigration

import (
	"context"
	"fmt"

	vmmclient "cloud.google.com/go/vmmigration/apiv1"
	"cloud.google.com/go/vmmigration/apiv1/vmmigrationpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

type createOperation interface {
	Name() string
	Wait(ctx context.Context, opts ...gax.CallOption) (*vmmigrationpb.Source, error)
}

type sourceAPI interface {
	CreateSource(ctx context.Context, req *vmmigrationpb.CreateSourceRequest) (createOperation, error)
	GetSource(ctx context.Context, req *vmmigrationpb.GetSourceRequest) (*vmmigrationpb.Source, error)
	Close() error
}

type sdkClient struct {
	client *vmmclient.Client
}

func (c sdkClient) CreateSource(ctx context.Context, req *vmmigrationpb.CreateSourceRequest) (createOperation, error) {
	op, err := c.client.CreateSource(ctx, req)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func (c sdkClient) GetSource(ctx context.Context, req *vmmigrationpb.GetSourceRequest) (*vmmigrationpb.Source, error) {
	return c.client.GetSource(ctx, req)
}

func (c sdkClient) Close() error {
	return c.client.Close()
}

// Service implements ports.MigrationService.
type Service struct {
	api sourceAPI
}

// NewService dials the VM Migration API with the given client options.
func NewService(ctx context.Context, opts ...option.ClientOption) (*Service, error) {
	client, err := vmmclient.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vm migration client: %w", err)
	}
	return &Service{api: sdkClient{client: client}}, nil
}

func (s *Service) CreateSource(ctx context.Context, desc source.Descriptor) (ports.Operation, error) {
	if s == nil || s.api == nil {
		return nil, fmt.Errorf("vm migration client is nil")
	}
	op, err := s.api.CreateSource(ctx, buildCreateSourceRequest(desc))
	if err != nil {
		return nil, fmt.Errorf("create source %s: %w", desc.Path(), mapStatus(err))
	}
	return operation{op: op, path: desc.Path()}, nil
}

func (s *Service) GetSource(ctx context.Context, path string) (source.MigrationSource, error) {
	if s == nil || s.api == nil {
		return source.MigrationSource{}, fmt.Errorf("vm migration client is nil")
	}
	resp, err := s.api.GetSource(ctx, &vmmigrationpb.GetSourceRequest{Name: path})
	if err != nil {
		return source.MigrationSource{}, fmt.Errorf("get source %s: %w", path, mapStatus(err))
	}
	return fromProto(resp), nil
}

// Close releases the underlying client connection.
func (s *Service) Close() error {
	if s == nil || s.api == nil {
		return nil
	}
	return s.api.Close()
}

type operation struct {
	op   createOperation
	path string
}

func (o operation) Name() string {
	return o.op.Name()
}

func (o operation) Wait(ctx context.Context) (source.MigrationSource, error) {
	resp, err := o.op.Wait(ctx)
	if err != nil {
		return source.MigrationSource{}, fmt.Errorf("wait for source %s: %w", o.path, mapStatus(err))
	}
	return fromProto(resp), nil
}
