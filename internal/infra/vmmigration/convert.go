// Where: vmm/internal/infra/vmmigration/convert.go
// What: Domain <-> protobuf conversion and status mapping.
// Why: Keep SDK types out of the usecase layer.
package vmmigration

import (
	"fmt"
	"maps"
	"time"

	"cloud.google.com/go/vmmigration/apiv1/vmmigrationpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

func buildCreateSourceRequest(desc source.Descriptor) *vmmigrationpb.CreateSourceRequest {
	return &vmmigrationpb.CreateSourceRequest{
		Parent:    desc.Parent,
		SourceId:  desc.SourceID,
		RequestId: desc.RequestID,
		Source: &vmmigrationpb.Source{
			Description: desc.Description,
			Labels:      maps.Clone(desc.Labels),
			SourceDetails: &vmmigrationpb.Source_Aws{
				Aws: &vmmigrationpb.AwsSourceDetails{
					AwsRegion: desc.AWS.Region,
					CredentialsType: &vmmigrationpb.AwsSourceDetails_AccessKeyCreds{
						AccessKeyCreds: &vmmigrationpb.AwsSourceDetails_AccessKeyCredentials{
							AccessKeyId:     desc.AWS.Credentials.AccessKeyID,
							SecretAccessKey: desc.AWS.Credentials.SecretAccessKey,
						},
					},
				},
			},
		},
	}
}

func fromProto(src *vmmigrationpb.Source) source.MigrationSource {
	if src == nil {
		return source.MigrationSource{}
	}
	out := source.MigrationSource{
		Name:        src.GetName(),
		Description: src.GetDescription(),
		Labels:      maps.Clone(src.GetLabels()),
		CreateTime:  asTime(src.GetCreateTime()),
		UpdateTime:  asTime(src.GetUpdateTime()),
	}
	if aws := src.GetAws(); aws != nil {
		out.AWSRegion = aws.GetAwsRegion()
		out.State = aws.GetState().String()
	}
	return out
}

func asTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}

// mapStatus attaches the port sentinel matching the gRPC status of err.
func mapStatus(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %w", ports.ErrAlreadyExists, err)
	case codes.NotFound:
		return fmt.Errorf("%w: %w", ports.ErrNotFound, err)
	default:
		return err
	}
}

