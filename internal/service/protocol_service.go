package service

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"coachdesk/coach-console/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrExportFailed = errors.New("failed to export protocol")

// ProtocolExport points at a serialized copy of the document in object
// storage. The URL is a short-lived presigned download link the coach can
// share.
type ProtocolExport struct {
	ObjectKey string `json:"objectKey"`
	URL       string `json:"url"`
}

// ProtocolService owns the editing state of the single active protocol
// document. The editor is deliberately single-document: starting over goes
// through Reset. All operations are safe for concurrent HTTP handlers.
type ProtocolService interface {
	Current() domain.Protocol
	SetTitle(title string) domain.Protocol
	AddSection(title string) domain.Protocol
	RemoveSection(sectionID string) domain.Protocol
	AddBlock(sectionID string, blockType domain.BlockType) domain.Protocol
	UpdateBlock(sectionID, blockID string, patch domain.BlockUpdate) domain.Protocol
	RemoveBlock(sectionID, blockID string) domain.Protocol
	ReorderBlocks(sectionID string, from, to int) domain.Protocol
	Reset() domain.Protocol

	SaveAsTemplate(ctx context.Context) (*domain.Protocol, error)
	ListTemplates(ctx context.Context) ([]domain.Protocol, error)
	Export(ctx context.Context) (*ProtocolExport, error)
}

type protocolService struct {
	mu           sync.Mutex
	current      *domain.Protocol
	templateRepo repository.ProtocolTemplateRepository
	fileStorage  storage.FileStorage
	// lastExportKey is the object key of the most recent export; superseded
	// exports are pruned so the bucket holds one object per process.
	lastExportKey string
}

// NewProtocolService creates a protocol editor seeded with a fresh document.
func NewProtocolService(templateRepo repository.ProtocolTemplateRepository, fileStorage storage.FileStorage) ProtocolService {
	return &protocolService{
		current:      domain.NewProtocol(),
		templateRepo: templateRepo,
		fileStorage:  fileStorage,
	}
}

func (s *protocolService) Current() domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *protocolService) SetTitle(title string) domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.SetTitle(title)
	return s.current.Clone()
}

func (s *protocolService) AddSection(title string) domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.AddSection(title)
	return s.current.Clone()
}

func (s *protocolService) RemoveSection(sectionID string) domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.RemoveSection(sectionID)
	return s.current.Clone()
}

func (s *protocolService) AddBlock(sectionID string, blockType domain.BlockType) domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.AddBlock(sectionID, blockType)
	return s.current.Clone()
}

func (s *protocolService) UpdateBlock(sectionID, blockID string, patch domain.BlockUpdate) domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.UpdateBlock(sectionID, blockID, patch)
	return s.current.Clone()
}

func (s *protocolService) RemoveBlock(sectionID, blockID string) domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.RemoveBlock(sectionID, blockID)
	return s.current.Clone()
}

func (s *protocolService) ReorderBlocks(sectionID string, from, to int) domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ReorderBlocks(sectionID, from, to)
	return s.current.Clone()
}

// Reset discards the current document and starts a fresh one. There is no
// undo; mutation is destructive by design.
func (s *protocolService) Reset() domain.Protocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.NewProtocol()
	return s.current.Clone()
}

// SaveAsTemplate persists a copy of the current document in the template
// collection. The copy gets its own id so the editor can keep mutating the
// original and save again later.
func (s *protocolService) SaveAsTemplate(ctx context.Context) (*domain.Protocol, error) {
	s.mu.Lock()
	template := s.current.Clone()
	s.mu.Unlock()

	template.ID = uuid.NewString()
	template.IsTemplate = true

	if err := s.templateRepo.Create(ctx, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *protocolService) ListTemplates(ctx context.Context) ([]domain.Protocol, error) {
	return s.templateRepo.GetAll(ctx)
}

// Export serializes the current document to JSON in object storage and
// returns a presigned download link.
func (s *protocolService) Export(ctx context.Context) (*ProtocolExport, error) {
	snapshot := s.Current()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	objectKey := fmt.Sprintf("protocols/%s/%d.json", snapshot.ID, time.Now().UTC().UnixNano())
	if err := s.fileStorage.PutObject(ctx, objectKey, data, "application/json"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	s.mu.Lock()
	previous := s.lastExportKey
	s.lastExportKey = objectKey
	s.mu.Unlock()

	// Prune the superseded export. Best-effort: a leftover object costs
	// storage, not correctness.
	if previous != "" && previous != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			log.Printf("WARN: Failed to delete superseded export %s: %v", previous, err)
		}
	}

	return &ProtocolExport{ObjectKey: objectKey, URL: url}, nil
}
