package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

// AzureStore persists blobs in a single Azure Blob Storage container.
type AzureStore struct {
	client    *azblob.Client
	container string
}

// NewAzureStore connects to the named container, creating it if it does not
// exist. The connection string must carry an account key for SignURL to work;
// a SAS- or identity-based connection can read and write but cannot sign.
func NewAzureStore(ctx context.Context, connectionString, containerName string) (*AzureStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to blob storage: %w", err)
	}

	_, err = client.CreateContainer(ctx, containerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("create container %q: %w", containerName, err)
	}

	return &AzureStore{client: client, container: containerName}, nil
}

// List returns all blob names under prefix.
func (s *AzureStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				keys = append(keys, *item.Name)
			}
		}
	}
	return keys, nil
}

// Get downloads the blob at key.
func (s *AzureStore) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

// Put uploads data to key, overwriting any existing blob.
func (s *AzureStore) Put(ctx context.Context, key string, data []byte) error {
	if _, err := s.client.UploadBuffer(ctx, s.container, key, data, nil); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// SignURL mints a container SAS URL with the requested scope.
func (s *AzureStore) SignURL(scope Scope, expiry time.Time) (string, error) {
	perms := sas.ContainerPermissions{Read: true, List: true}
	if scope == ScopeReadWrite {
		perms.Write = true
		perms.Create = true
	}

	containerClient := s.client.ServiceClient().NewContainerClient(s.container)
	url, err := containerClient.GetSASURL(perms, expiry, nil)
	if err != nil {
		// The SDK refuses to sign unless the client holds a shared key.
		return "", fmt.Errorf("%w: %v", ErrNoCredential, err)
	}
	return url, nil
}
