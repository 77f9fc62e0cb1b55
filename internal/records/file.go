package records

import (
	"io"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/validation"
)

// Upload is file content on its way into the blob store.
type Upload struct {
	Name    string
	Content io.Reader
}

// CreateFile stores the upload and then the row. The blob is removed again if
// the row cannot be written.
func (m *Manager) CreateFile(v models.Viewer, f *models.File, upload Upload) (err error) {
	if f.CreatedBy == nil && v.Authenticated {
		f.CreatedBy = v.ActorID()
	}

	path, err := m.blobs.Save(upload.Name, upload.Content)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			m.removeBlobs([]string{path})
		}
	}()

	f.Path = path
	if err := validation.File(f); err != nil {
		return err
	}

	m.stampCreate(&f.Audit, v)
	id, err := m.files.Create(f)
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

// UpdateFile writes f over the stored file. A non-nil upload replaces the
// content; the previous blob is removed once the row points at the new one.
func (m *Manager) UpdateFile(v models.Viewer, f *models.File, upload *Upload) (err error) {
	stored, err := m.files.GetByID(f.ID, access.For(v).Files())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("file", f.ID)
	}

	f.Path = stored.Path
	if upload != nil {
		var path string
		path, err = m.blobs.Save(upload.Name, upload.Content)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				m.removeBlobs([]string{path})
			}
		}()
		f.Path = path
	}

	if err := validation.File(f); err != nil {
		return err
	}

	m.stampUpdate(&f.Audit, stored.Audit)
	if err := m.files.Update(f); err != nil {
		return err
	}
	if f.Path != stored.Path {
		m.removeBlobs([]string{stored.Path})
	}
	return nil
}

func (m *Manager) DeleteFile(v models.Viewer, id int64) error {
	stored, err := m.files.GetByID(id, access.For(v).Files())
	if err != nil {
		return err
	}
	if stored == nil {
		return notFound("file", id)
	}
	if err := m.files.Delete(id); err != nil {
		return err
	}
	m.removeBlobs([]string{stored.Path})
	return nil
}

func (m *Manager) GetFile(v models.Viewer, id int64) (*models.File, error) {
	f, err := m.files.GetByID(id, access.For(v).Files())
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, notFound("file", id)
	}
	return f, nil
}

func (m *Manager) ListFiles(v models.Viewer) ([]models.File, error) {
	return m.files.List(access.For(v).Files())
}

// OpenFile returns the content of a visible file.
func (m *Manager) OpenFile(v models.Viewer, id int64) (*models.File, io.ReadCloser, error) {
	f, err := m.GetFile(v, id)
	if err != nil {
		return nil, nil, err
	}
	content, err := m.blobs.Open(f.Path)
	if err != nil {
		return nil, nil, err
	}
	return f, content, nil
}
