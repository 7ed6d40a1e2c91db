// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/ababa/ent/predicate"
	"github.com/abhisek/ababa/ent/subject"
	"github.com/google/uuid"
)

// SubjectUpdate is the builder for updating Subject entities.
type SubjectUpdate struct {
	config
	hooks    []Hook
	mutation *SubjectMutation
}

// Where appends a list predicates to the SubjectUpdate builder.
func (_u *SubjectUpdate) Where(ps ...predicate.Subject) *SubjectUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetName sets the "name" field.
func (_u *SubjectUpdate) SetName(v string) *SubjectUpdate {
	_u.mutation.SetName(v)
	return _u
}

// SetNillableName sets the "name" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableName(v *string) *SubjectUpdate {
	if v != nil {
		_u.SetName(*v)
	}
	return _u
}

// SetIcon sets the "icon" field.
func (_u *SubjectUpdate) SetIcon(v string) *SubjectUpdate {
	_u.mutation.SetIcon(v)
	return _u
}

// SetNillableIcon sets the "icon" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableIcon(v *string) *SubjectUpdate {
	if v != nil {
		_u.SetIcon(*v)
	}
	return _u
}

// SetColor sets the "color" field.
func (_u *SubjectUpdate) SetColor(v string) *SubjectUpdate {
	_u.mutation.SetColor(v)
	return _u
}

// SetNillableColor sets the "color" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableColor(v *string) *SubjectUpdate {
	if v != nil {
		_u.SetColor(*v)
	}
	return _u
}

// SetGradeID sets the "grade_id" field.
func (_u *SubjectUpdate) SetGradeID(v uuid.UUID) *SubjectUpdate {
	_u.mutation.SetGradeID(v)
	return _u
}

// SetNillableGradeID sets the "grade_id" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableGradeID(v *uuid.UUID) *SubjectUpdate {
	if v != nil {
		_u.SetGradeID(*v)
	}
	return _u
}

// SetStudents sets the "students" field.
func (_u *SubjectUpdate) SetStudents(v int) *SubjectUpdate {
	_u.mutation.ResetStudents()
	_u.mutation.SetStudents(v)
	return _u
}

// SetNillableStudents sets the "students" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableStudents(v *int) *SubjectUpdate {
	if v != nil {
		_u.SetStudents(*v)
	}
	return _u
}

// AddStudents adds value to the "students" field.
func (_u *SubjectUpdate) AddStudents(v int) *SubjectUpdate {
	_u.mutation.AddStudents(v)
	return _u
}

// SetRating sets the "rating" field.
func (_u *SubjectUpdate) SetRating(v string) *SubjectUpdate {
	_u.mutation.SetRating(v)
	return _u
}

// SetNillableRating sets the "rating" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableRating(v *string) *SubjectUpdate {
	if v != nil {
		_u.SetRating(*v)
	}
	return _u
}

// SetCreatedAt sets the "created_at" field.
func (_u *SubjectUpdate) SetCreatedAt(v time.Time) *SubjectUpdate {
	_u.mutation.SetCreatedAt(v)
	return _u
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (_u *SubjectUpdate) SetNillableCreatedAt(v *time.Time) *SubjectUpdate {
	if v != nil {
		_u.SetCreatedAt(*v)
	}
	return _u
}

// Mutation returns the SubjectMutation object of the builder.
func (_u *SubjectUpdate) Mutation() *SubjectMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *SubjectUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SubjectUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *SubjectUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SubjectUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SubjectUpdate) check() error {
	if v, ok := _u.mutation.Name(); ok {
		if err := subject.NameValidator(v); err != nil {
			return &ValidationError{Name: "name", err: fmt.Errorf(`ent: validator failed for field "Subject.name": %w`, err)}
		}
	}
	return nil
}

func (_u *SubjectUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(subject.Table, subject.Columns, sqlgraph.NewFieldSpec(subject.FieldID, field.TypeUUID))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Name(); ok {
		_spec.SetField(subject.FieldName, field.TypeString, value)
	}
	if value, ok := _u.mutation.Icon(); ok {
		_spec.SetField(subject.FieldIcon, field.TypeString, value)
	}
	if value, ok := _u.mutation.Color(); ok {
		_spec.SetField(subject.FieldColor, field.TypeString, value)
	}
	if value, ok := _u.mutation.GradeID(); ok {
		_spec.SetField(subject.FieldGradeID, field.TypeUUID, value)
	}
	if value, ok := _u.mutation.Students(); ok {
		_spec.SetField(subject.FieldStudents, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedStudents(); ok {
		_spec.AddField(subject.FieldStudents, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Rating(); ok {
		_spec.SetField(subject.FieldRating, field.TypeString, value)
	}
	if value, ok := _u.mutation.CreatedAt(); ok {
		_spec.SetField(subject.FieldCreatedAt, field.TypeTime, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{subject.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// SubjectUpdateOne is the builder for updating a single Subject entity.
type SubjectUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *SubjectMutation
}

// SetName sets the "name" field.
func (_u *SubjectUpdateOne) SetName(v string) *SubjectUpdateOne {
	_u.mutation.SetName(v)
	return _u
}

// SetNillableName sets the "name" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableName(v *string) *SubjectUpdateOne {
	if v != nil {
		_u.SetName(*v)
	}
	return _u
}

// SetIcon sets the "icon" field.
func (_u *SubjectUpdateOne) SetIcon(v string) *SubjectUpdateOne {
	_u.mutation.SetIcon(v)
	return _u
}

// SetNillableIcon sets the "icon" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableIcon(v *string) *SubjectUpdateOne {
	if v != nil {
		_u.SetIcon(*v)
	}
	return _u
}

// SetColor sets the "color" field.
func (_u *SubjectUpdateOne) SetColor(v string) *SubjectUpdateOne {
	_u.mutation.SetColor(v)
	return _u
}

// SetNillableColor sets the "color" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableColor(v *string) *SubjectUpdateOne {
	if v != nil {
		_u.SetColor(*v)
	}
	return _u
}

// SetGradeID sets the "grade_id" field.
func (_u *SubjectUpdateOne) SetGradeID(v uuid.UUID) *SubjectUpdateOne {
	_u.mutation.SetGradeID(v)
	return _u
}

// SetNillableGradeID sets the "grade_id" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableGradeID(v *uuid.UUID) *SubjectUpdateOne {
	if v != nil {
		_u.SetGradeID(*v)
	}
	return _u
}

// SetStudents sets the "students" field.
func (_u *SubjectUpdateOne) SetStudents(v int) *SubjectUpdateOne {
	_u.mutation.ResetStudents()
	_u.mutation.SetStudents(v)
	return _u
}

// SetNillableStudents sets the "students" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableStudents(v *int) *SubjectUpdateOne {
	if v != nil {
		_u.SetStudents(*v)
	}
	return _u
}

// AddStudents adds value to the "students" field.
func (_u *SubjectUpdateOne) AddStudents(v int) *SubjectUpdateOne {
	_u.mutation.AddStudents(v)
	return _u
}

// SetRating sets the "rating" field.
func (_u *SubjectUpdateOne) SetRating(v string) *SubjectUpdateOne {
	_u.mutation.SetRating(v)
	return _u
}

// SetNillableRating sets the "rating" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableRating(v *string) *SubjectUpdateOne {
	if v != nil {
		_u.SetRating(*v)
	}
	return _u
}

// SetCreatedAt sets the "created_at" field.
func (_u *SubjectUpdateOne) SetCreatedAt(v time.Time) *SubjectUpdateOne {
	_u.mutation.SetCreatedAt(v)
	return _u
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (_u *SubjectUpdateOne) SetNillableCreatedAt(v *time.Time) *SubjectUpdateOne {
	if v != nil {
		_u.SetCreatedAt(*v)
	}
	return _u
}

// Mutation returns the SubjectMutation object of the builder.
func (_u *SubjectUpdateOne) Mutation() *SubjectMutation {
	return _u.mutation
}

// Where appends a list predicates to the SubjectUpdate builder.
func (_u *SubjectUpdateOne) Where(ps ...predicate.Subject) *SubjectUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *SubjectUpdateOne) Select(field string, fields ...string) *SubjectUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated Subject entity.
func (_u *SubjectUpdateOne) Save(ctx context.Context) (*Subject, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SubjectUpdateOne) SaveX(ctx context.Context) *Subject {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *SubjectUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SubjectUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SubjectUpdateOne) check() error {
	if v, ok := _u.mutation.Name(); ok {
		if err := subject.NameValidator(v); err != nil {
			return &ValidationError{Name: "name", err: fmt.Errorf(`ent: validator failed for field "Subject.name": %w`, err)}
		}
	}
	return nil
}

func (_u *SubjectUpdateOne) sqlSave(ctx context.Context) (_node *Subject, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(subject.Table, subject.Columns, sqlgraph.NewFieldSpec(subject.FieldID, field.TypeUUID))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "Subject.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, subject.FieldID)
		for _, f := range fields {
			if !subject.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != subject.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Name(); ok {
		_spec.SetField(subject.FieldName, field.TypeString, value)
	}
	if value, ok := _u.mutation.Icon(); ok {
		_spec.SetField(subject.FieldIcon, field.TypeString, value)
	}
	if value, ok := _u.mutation.Color(); ok {
		_spec.SetField(subject.FieldColor, field.TypeString, value)
	}
	if value, ok := _u.mutation.GradeID(); ok {
		_spec.SetField(subject.FieldGradeID, field.TypeUUID, value)
	}
	if value, ok := _u.mutation.Students(); ok {
		_spec.SetField(subject.FieldStudents, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedStudents(); ok {
		_spec.AddField(subject.FieldStudents, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Rating(); ok {
		_spec.SetField(subject.FieldRating, field.TypeString, value)
	}
	if value, ok := _u.mutation.CreatedAt(); ok {
		_spec.SetField(subject.FieldCreatedAt, field.TypeTime, value)
	}
	_node = &Subject{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{subject.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
